// Command unicart builds a cart from a JSON order file, applies the listed
// operations, and prints the resulting summary as JSON.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/xenking/unicart"
	"github.com/xenking/unicart/money"
)

// Config holds the CLI configuration, loadable from flags, environment
// variables (UNICART_ prefix), or a unicart.yaml file.
type Config struct {
	OrderFile string `default:"order.json" usage:"path to the JSON order file" flag:"order-file"`
	Rounding  string `default:"round" usage:"rounding mode: round, floor or ceil"`
	Stacking  bool   `default:"true" usage:"allow more than one discount per cart"`
	Override  bool   `default:"false" usage:"replace items on duplicate id"`
	Pretty    bool   `default:"true" usage:"indent the summary JSON"`
	Verbose   bool   `default:"false" usage:"log every applied operation"`
}

func main() {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "UNICART",
		Files:     []string{"unicart.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	lg := zap.NewNop()
	if cfg.Verbose {
		var err error
		lg, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintln(os.Stderr, "create logger:", err)
			os.Exit(1)
		}
	}
	defer func() { _ = lg.Sync() }()

	if err := run(cfg, lg); err != nil {
		lg.Error("unicart failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg Config, lg *zap.Logger) error {
	mode, err := money.ParseRounding(cfg.Rounding)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(cfg.OrderFile)
	if err != nil {
		return errors.Wrap(err, "read order file")
	}

	order, err := decodeOrder(data)
	if err != nil {
		return errors.Wrapf(err, "decode order file %s", cfg.OrderFile)
	}

	cart := unicart.New(
		unicart.WithStacking(cfg.Stacking),
		unicart.WithItemOverride(cfg.Override),
		unicart.WithRounding(mode),
		unicart.WithLogger(lg),
	)

	for _, it := range order.Items {
		if err := cart.AddItem(it.ID, it.Price, it.Quantity); err != nil {
			return errors.Wrapf(err, "add item %v", it.ID)
		}
	}

	// A failed operation rejects only itself; remaining operations still run.
	for i, op := range order.Operations {
		if err := applyOperation(cart, op); err != nil {
			lg.Warn("operation rejected",
				zap.Int("index", i),
				zap.String("op", op.Name),
				zap.Error(err))
		}
	}

	out := cart.Summary().JSON()
	if cfg.Pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, out, "", "  "); err != nil {
			return errors.Wrap(err, "indent summary")
		}
		out = buf.Bytes()
	}

	fmt.Println(string(out))
	return nil
}

func applyOperation(cart *unicart.Cart, op operation) error {
	switch op.Name {
	case "flatDiscountOnItem":
		return cart.ApplyFlatDiscountOnItem(op.ItemID, op.Amount)
	case "percentageDiscountOnItem":
		return cart.ApplyPercentageDiscountOnItem(op.ItemID, op.Percentage, op.Upto)
	case "bxgyOnItem":
		return cart.ApplyBxGyOnItem(op.ItemID, op.XQty, op.YQty, op.Label)
	case "deliveryChargeOnItem":
		return cart.ApplyDeliveryChargeOnItem(op.ItemID, op.Amount)
	case "taxOnItem":
		return cart.ApplyTaxOnItem(op.ItemID, op.Rate, op.TaxType)
	case "flatDiscountOnCart":
		return cart.ApplyFlatDiscountOnCart(op.Amount)
	case "percentageDiscountOnCart":
		return cart.ApplyPercentageDiscountOnCart(op.Percentage, op.Upto)
	case "spendGetOnCart":
		return cart.ApplySpendGetOnCart(op.Spend, op.Get)
	case "deliveryChargeOnCart":
		return cart.ApplyDeliveryChargeOnCart(op.Amount)
	case "taxOnCart":
		return cart.ApplyTaxOnCart(op.Rate, op.TaxType)
	default:
		return errors.Errorf("unknown operation: %q", op.Name)
	}
}
