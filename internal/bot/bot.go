// Package bot is the Telegram front end: it parses commands, checks chat
// permissions, calls the store, and formats replies. All user-facing text
// lives here; the store only returns data and typed errors.
package bot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"phonestock/internal/model"
	"phonestock/internal/perm"
	"phonestock/internal/sheet"
	"phonestock/internal/store"
	"phonestock/internal/validate"
)

// Bot dispatches chat commands against the inventory store.
type Bot struct {
	api        *tgbotapi.BotAPI
	db         *sql.DB
	perms      *perm.Resolver
	excelPath  string
	syncPolicy store.SyncPolicy
}

// New connects to the Telegram API.
func New(token string, db *sql.DB, perms *perm.Resolver, excelPath string, syncPolicy store.SyncPolicy) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connecting to telegram: %w", err)
	}
	return &Bot{
		api:        api,
		db:         db,
		perms:      perms,
		excelPath:  excelPath,
		syncPolicy: syncPolicy,
	}, nil
}

// commandPerms maps each command to the permission it requires. Commands
// not listed are open to everyone.
var commandPerms = map[string]string{
	"search":   "search",
	"device":   "search",
	"history":  "search",
	"stats":    "stats",
	"lowstock": "stats",
	"transfer": "transfer",
	"sync":     "sync",
	"sale":     "sale",
	"return":   "return",
	"intake":   "intake",
}

// Run long-polls for updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) {
	log.WithField("account", b.api.Self.UserName).Info("bot started")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			b.handleCommand(ctx, update.Message)
		}
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	command := msg.Command()
	userID := msg.From.ID

	if required, ok := commandPerms[command]; ok && !b.perms.Allowed(userID, required) {
		b.reply(msg, "You don't have permission to use this command.")
		log.WithFields(log.Fields{
			"user":    userID,
			"command": command,
			"role":    b.perms.RoleOf(userID),
		}).Warn("command denied")
		return
	}

	args := strings.TrimSpace(msg.CommandArguments())
	var reply string
	var err error

	switch command {
	case "start", "help":
		reply = helpText(b.perms.RoleOf(userID))
	case "search":
		reply, err = b.cmdSearch(ctx, args)
	case "device":
		reply, err = b.cmdDevice(ctx, args)
	case "history":
		reply, err = b.cmdHistory(ctx, args)
	case "stats":
		reply, err = b.cmdStats(ctx)
	case "lowstock":
		reply, err = b.cmdLowStock(ctx, args)
	case "sale":
		reply, err = b.cmdSale(ctx, args, userID)
	case "return":
		reply, err = b.cmdReturn(ctx, args, userID)
	case "intake":
		reply, err = b.cmdIntake(ctx, args, userID)
	case "transfer":
		reply, err = b.cmdTransfer(ctx, args, userID)
	case "sync":
		reply, err = b.cmdSync(ctx)
	default:
		reply = "Unknown command. Send /help for the command list."
	}

	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"user":    userID,
			"command": command,
		}).Warn("command failed")
		reply = userMessage(err)
	}

	b.reply(msg, reply)
}

// userMessage renders a typed store failure for the chat user.
func userMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return "Not found: " + err.Error()
	case errors.Is(err, store.ErrInvalidState):
		return "Not possible right now: " + err.Error()
	case errors.Is(err, store.ErrReturnExpired):
		return "The 3-day return period has expired."
	case errors.Is(err, store.ErrTransfer):
		return "Transfer failed: " + err.Error()
	case errors.Is(err, validate.ErrInvalid), errors.Is(err, errBadArgs):
		return "Invalid input: " + err.Error()
	case errors.Is(err, store.ErrSync):
		return "Sync aborted: " + err.Error()
	default:
		return "Something went wrong, please try again."
	}
}

var errBadArgs = errors.New("bad arguments")

func (b *Bot) cmdSearch(ctx context.Context, args string) (string, error) {
	devices, err := store.SearchDevices(ctx, b.db, args, 0, "")
	if err != nil {
		return "", err
	}
	return formatDevices(devices), nil
}

func (b *Bot) cmdDevice(ctx context.Context, args string) (string, error) {
	if args == "" {
		return "", fmt.Errorf("usage: /device <imei>: %w", errBadArgs)
	}
	device, err := store.GetDevice(ctx, b.db, args)
	if err != nil {
		return "", err
	}
	return formatDevice(device), nil
}

func (b *Bot) cmdHistory(ctx context.Context, args string) (string, error) {
	if args == "" {
		return "", fmt.Errorf("usage: /history <imei>: %w", errBadArgs)
	}
	history, err := store.GetDeviceHistory(ctx, b.db, args)
	if err != nil {
		return "", err
	}
	return formatHistory(history), nil
}

func (b *Bot) cmdStats(ctx context.Context) (string, error) {
	summary, err := store.Analytics(ctx, b.db)
	if err != nil {
		return "", err
	}
	return formatSummary(summary), nil
}

func (b *Bot) cmdLowStock(ctx context.Context, args string) (string, error) {
	threshold := store.DefaultLowStockThreshold
	if args != "" {
		t, err := strconv.Atoi(args)
		if err != nil {
			return "", fmt.Errorf("threshold must be a number: %w", errBadArgs)
		}
		threshold = t
	}
	products, err := store.LowStockProducts(ctx, b.db, threshold)
	if err != nil {
		return "", err
	}
	return formatProducts(products, threshold), nil
}

// cmdSale expects: /sale <imei>; <customer name>; <phone>; <shop id>; <payment>
func (b *Bot) cmdSale(ctx context.Context, args string, userID int64) (string, error) {
	parts := splitArgs(args, 5)
	if len(parts) < 4 {
		return "", fmt.Errorf("usage: /sale imei; customer; phone; shop id; payment: %w", errBadArgs)
	}
	shopID, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return "", fmt.Errorf("shop id must be a number: %w", errBadArgs)
	}
	payment := ""
	if len(parts) == 5 {
		payment = parts[4]
	}

	purchase, err := store.RecordSale(ctx, b.db, parts[0], parts[1], parts[2], shopID, payment, "")
	if err != nil {
		return "", err
	}
	return formatPurchase(purchase), nil
}

// cmdReturn expects: /return <purchase id>; <reason>; <condition>
func (b *Bot) cmdReturn(ctx context.Context, args string, userID int64) (string, error) {
	parts := splitArgs(args, 3)
	if len(parts) < 2 {
		return "", fmt.Errorf("usage: /return purchase id; reason; condition: %w", errBadArgs)
	}
	purchaseID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return "", fmt.Errorf("purchase id must be a number: %w", errBadArgs)
	}
	condition := ""
	if len(parts) == 3 {
		condition = parts[2]
	}

	ret, err := store.ProcessReturn(ctx, b.db, purchaseID, parts[1], condition,
		strconv.FormatInt(userID, 10), "")
	if err != nil {
		return "", err
	}
	return formatReturn(ret), nil
}

// cmdIntake expects: /intake <imei>; <model>; <seller>; <phone>; <condition>; <price>; <shop id>
func (b *Bot) cmdIntake(ctx context.Context, args string, userID int64) (string, error) {
	parts := splitArgs(args, 7)
	if len(parts) < 7 {
		return "", fmt.Errorf("usage: /intake imei; model; seller; phone; condition; price; shop id: %w", errBadArgs)
	}
	price, err := strconv.ParseFloat(parts[5], 64)
	if err != nil || price < 0 {
		return "", fmt.Errorf("price must be a non-negative number: %w", errBadArgs)
	}
	shopID, err := strconv.ParseInt(parts[6], 10, 64)
	if err != nil {
		return "", fmt.Errorf("shop id must be a number: %w", errBadArgs)
	}

	device, intake, err := store.IntakeUsedDevice(ctx, b.db, parts[0], "", parts[1],
		model.SellerInfo{Name: parts[2], Phone: parts[3]}, parts[4], price, shopID,
		strconv.FormatInt(userID, 10), "")
	if err != nil {
		return "", err
	}
	return formatIntake(device, intake), nil
}

// cmdTransfer expects: /transfer <imei> <from shop> <to shop>
func (b *Bot) cmdTransfer(ctx context.Context, args string, userID int64) (string, error) {
	fields := strings.Fields(args)
	if len(fields) != 3 {
		return "", fmt.Errorf("usage: /transfer imei from-shop to-shop: %w", errBadArgs)
	}
	fromShop, err1 := strconv.ParseInt(fields[1], 10, 64)
	toShop, err2 := strconv.ParseInt(fields[2], 10, 64)
	if err1 != nil || err2 != nil {
		return "", fmt.Errorf("shop ids must be numbers: %w", errBadArgs)
	}

	transfer, err := store.TransferDevice(ctx, b.db, fields[0], fromShop, toShop, userID, "")
	if err != nil {
		return "", err
	}
	return formatTransfer(transfer), nil
}

func (b *Bot) cmdSync(ctx context.Context) (string, error) {
	rows, err := sheet.ReadDevices(b.excelPath)
	if err != nil {
		return "", err
	}
	count, err := store.SyncDevices(ctx, b.db, rows, b.syncPolicy)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Synced %d devices from the workbook.", count), nil
}

func (b *Bot) reply(msg *tgbotapi.Message, text string) {
	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	reply.ReplyToMessageID = msg.MessageID
	if _, err := b.api.Send(reply); err != nil {
		log.WithError(err).Error("sending reply")
	}
}

// splitArgs splits a semicolon-separated argument list, trimming each part.
func splitArgs(args string, max int) []string {
	if strings.TrimSpace(args) == "" {
		return nil
	}
	parts := strings.SplitN(args, ";", max)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
