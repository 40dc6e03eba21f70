// Command orderctl cancels, refunds or pays for an order from a terminal.
//
//	orderctl [-config file] <cancel|pay|refund> <order-number>
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/uniedit/orderflow/internal/adapter/outbound/backendapi"
	"github.com/uniedit/orderflow/internal/adapter/outbound/kafka"
	"github.com/uniedit/orderflow/internal/adapter/outbound/terminal"
	"github.com/uniedit/orderflow/internal/app/command/orderaction"
	"github.com/uniedit/orderflow/internal/domain/order"
	"github.com/uniedit/orderflow/internal/infra/config"
	"github.com/uniedit/orderflow/internal/infra/httpclient"
	"github.com/uniedit/orderflow/internal/port/outbound"
	"github.com/uniedit/orderflow/internal/shared/logger"
)

// Exit codes.
const (
	exitOK       = 0
	exitFailed   = 1
	exitDeclined = 2
	exitUsage    = 64
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("orderctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := fs.String("config", "", "path to config file")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: orderctl [-config file] <cancel|pay|refund> <order-number>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return exitUsage
	}
	action, number := order.Action(fs.Arg(0)), fs.Arg(1)
	switch action {
	case order.ActionCancel, order.ActionRefund, order.ActionPay:
	default:
		fmt.Fprintf(stderr, "unknown action %q\n", action)
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.LoadFrom(*configFile)
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return exitFailed
	}

	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: stderr,
	})
	defer func() { _ = log.Sync() }()

	httpClient := httpclient.New(cfg.HTTPClient,
		httpclient.WithTimeout(cfg.Backend.Timeout),
		httpclient.WithUserAgent("orderctl"),
	)
	backend := backendapi.NewClient(cfg.Backend.BaseURL, httpClient, log)

	o, err := backend.GetOrder(ctx, number)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			fmt.Fprintf(stderr, "order %s not found\n", number)
		} else {
			log.Error("fetch order failed", zap.String("order_number", number), zap.Error(err))
			fmt.Fprintln(stderr, "order could not be loaded")
		}
		return exitFailed
	}

	handoff, closeHandoff := newHandoff(cfg, stdout, log)
	defer closeHandoff()

	messages := messagesFromConfig(cfg.Messages)
	notifier := terminal.NewNotifier(stdout)
	reporter := orderaction.NewReporter(notifier, nil, log, messages.Unexpected)
	locks := orderaction.NewOrderLocks()

	var outcome orderaction.Outcome
	switch action {
	case order.ActionPay:
		launcher := orderaction.NewLauncher(orderaction.LauncherConfig{
			Gateway:   backend,
			Handoff:   handoff,
			PublicKey: cfg.Stripe.PublishableKey,
			Reporter:  reporter,
			Locks:     locks,
			Messages:  messages,
			Logger:    log,
		})
		outcome = launcher.Pay(ctx, o)
	default:
		coordinator := orderaction.NewCoordinator(orderaction.CoordinatorConfig{
			Backend:   backend,
			Gate:      orderaction.NewConfirmationGate(terminal.NewPrompt(stdin, stdout), log),
			Reporter:  reporter,
			Locks:     locks,
			OnUpdated: printOrder(stdout),
			Messages:  messages,
			Logger:    log,
		})
		if action == order.ActionCancel {
			outcome = coordinator.Cancel(ctx, o)
		} else {
			outcome = coordinator.Refund(ctx, o)
		}
	}

	return exitCode(outcome)
}

// newHandoff publishes to kafka when brokers are configured and prints the
// checkout link otherwise.
func newHandoff(cfg *config.Config, out io.Writer, log *zap.Logger) (outbound.CheckoutHandoffPort, func()) {
	if !cfg.Kafka.Enabled() {
		return terminal.NewHandoff(out, nil), func() {}
	}
	publisher := kafka.NewHandoffPublisher(kafka.Config{
		Brokers:      cfg.Kafka.Brokers,
		Topic:        cfg.Kafka.HandoffTopic,
		WriteTimeout: cfg.Kafka.WriteTimeout,
	}, nil, log)
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			log.Warn("close handoff publisher", zap.Error(err))
		}
	}
}

func printOrder(out io.Writer) orderaction.OrderUpdatedFunc {
	return func(o *order.Order) {
		data, err := json.MarshalIndent(o, "", "  ")
		if err != nil {
			fmt.Fprintf(out, "order %s is now %s\n", o.Number, o.Status)
			return
		}
		fmt.Fprintln(out, string(data))
	}
}

func messagesFromConfig(c config.MessagesConfig) orderaction.Messages {
	return orderaction.Messages{
		CancelPrompt:  promptFromConfig(c.CancelPrompt),
		RefundPrompt:  promptFromConfig(c.RefundPrompt),
		CancelFailed:  c.CancelFailed,
		RefundFailed:  c.RefundFailed,
		PaymentFailed: c.PaymentFailed,
		Unexpected:    c.Unexpected,
		Canceled:      c.Canceled,
		Refunded:      c.Refunded,
	}
}

func promptFromConfig(p config.PromptConfig) outbound.Prompt {
	return outbound.Prompt{Title: p.Title, Body: p.Body, Yes: p.Yes, No: p.No}
}

func exitCode(outcome orderaction.Outcome) int {
	switch outcome {
	case orderaction.OutcomeUpdated, orderaction.OutcomeLaunched:
		return exitOK
	case orderaction.OutcomeDeclined:
		return exitDeclined
	default:
		return exitFailed
	}
}
