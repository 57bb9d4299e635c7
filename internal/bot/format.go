package bot

import (
	"fmt"
	"strings"

	"phonestock/internal/model"
	"phonestock/internal/perm"
	"phonestock/internal/store"
)

// maxSearchResults caps how many devices a single reply lists.
const maxSearchResults = 10

func helpText(role string) string {
	var b strings.Builder
	b.WriteString("Phone stock bot. Commands:\n")
	b.WriteString("/search <text> — search the catalog\n")
	b.WriteString("/device <imei> — device details\n")
	b.WriteString("/history <imei> — full device history\n")
	b.WriteString("/stats — inventory summary\n")
	b.WriteString("/lowstock [threshold] — low-stock products\n")
	if role == perm.RoleAdmin || role == perm.RolePowerUser {
		b.WriteString("/transfer <imei> <from> <to> — move a device between shops\n")
		b.WriteString("/sync — re-import the workbook\n")
	}
	if role == perm.RoleAdmin {
		b.WriteString("/sale imei; customer; phone; shop; payment — record a sale\n")
		b.WriteString("/return id; reason; condition — process a return\n")
		b.WriteString("/intake imei; model; seller; phone; condition; price; shop — buy a used device\n")
	}
	return b.String()
}

func formatDevice(d *model.Device) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", d.Model, d.IMEI)
	fmt.Fprintf(&b, "Price: %.2f | Condition: %s | Status: %s\n", d.Price, d.Condition, d.Status)
	if d.RAM != "" || d.Storage != "" {
		fmt.Fprintf(&b, "Specs: %s RAM, %s", d.RAM, d.Storage)
		if d.Network != "" {
			fmt.Fprintf(&b, ", %s", d.Network)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Shop: %d", d.ShopID)
	if d.WarrantyEnd != nil {
		fmt.Fprintf(&b, " | Warranty until %s", d.WarrantyEnd.Format("2006-01-02"))
	}
	return b.String()
}

func formatDevices(devices []model.Device) string {
	if len(devices) == 0 {
		return "No devices found."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d device(s):\n", len(devices))
	for i, d := range devices {
		if i == maxSearchResults {
			fmt.Fprintf(&b, "… and %d more", len(devices)-maxSearchResults)
			break
		}
		fmt.Fprintf(&b, "• %s — %.2f, %s, %s (shop %d)\n", d.Model, d.Price, d.Condition, d.Status, d.ShopID)
	}
	return b.String()
}

func formatSummary(s *store.Summary) string {
	var b strings.Builder
	b.WriteString("Inventory summary\n")
	fmt.Fprintf(&b, "Total: %d | In stock: %d | Out: %d (%.2f%%)\n",
		s.TotalCount, s.InStockCount, s.OutOfStockCount, s.StockRatePercent)
	fmt.Fprintf(&b, "Price: avg %.2f, median %.2f, min %.2f, max %.2f\n",
		s.AveragePrice, s.MedianPrice, s.MinPrice, s.MaxPrice)
	for _, shop := range s.PerShop {
		fmt.Fprintf(&b, "Shop %d: %d total, %d in stock, %d models\n",
			shop.ShopID, shop.TotalCount, shop.InStockCount, shop.DistinctModelCount)
	}
	return b.String()
}

func formatProducts(products []model.Product, threshold int) string {
	if len(products) == 0 {
		return fmt.Sprintf("No products at or below %d in stock.", threshold)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d product(s) at or below %d:\n", len(products), threshold)
	for _, p := range products {
		fmt.Fprintf(&b, "• %s — %d left (%.2f)\n", p.Name, p.Stock, p.Price)
	}
	return b.String()
}

func formatPurchase(p *model.Purchase) string {
	return fmt.Sprintf("Sale #%d recorded: %s to %s for %.2f. Warranty %d days.",
		p.ID, p.DeviceIMEI, p.CustomerName, p.PurchasePrice, p.WarrantyPeriod)
}

func formatReturn(r *model.Return) string {
	return fmt.Sprintf("Return #%d filed for purchase #%d, refund %.2f (%s).",
		r.ID, r.PurchaseID, r.RefundAmount, r.Status)
}

func formatIntake(d *model.Device, u *model.UsedDevicePurchase) string {
	return fmt.Sprintf("Intake #%d: bought %s (%s) for %.2f, listed at %.2f.",
		u.ID, d.Model, d.IMEI, u.PurchasePrice, d.Price)
}

func formatTransfer(t *model.Transfer) string {
	return fmt.Sprintf("Transfer #%d: %s moved from %s to %s.",
		t.ID, t.DeviceIMEI, t.FromShopName, t.ToShopName)
}

func formatHistory(h *store.History) string {
	var b strings.Builder
	b.WriteString(formatDevice(h.Device))
	b.WriteString("\n")
	fmt.Fprintf(&b, "\nSales: %d", len(h.Purchases))
	for _, p := range h.Purchases {
		fmt.Fprintf(&b, "\n• #%d %s for %.2f to %s", p.ID, p.PurchaseDate.Format("2006-01-02"), p.PurchasePrice, p.CustomerName)
	}
	fmt.Fprintf(&b, "\nReturns: %d", len(h.Returns))
	for _, r := range h.Returns {
		fmt.Fprintf(&b, "\n• #%d %s refund %.2f (%s)", r.ID, r.ReturnDate.Format("2006-01-02"), r.RefundAmount, r.Status)
	}
	fmt.Fprintf(&b, "\nIntakes: %d", len(h.Intakes))
	fmt.Fprintf(&b, "\nTransfers: %d", len(h.Transfers))
	for _, t := range h.Transfers {
		fmt.Fprintf(&b, "\n• #%d %s shop %d → shop %d", t.ID, t.TransferDate.Format("2006-01-02"), t.FromShopID, t.ToShopID)
	}
	return b.String()
}
