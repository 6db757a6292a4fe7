// Package catalog - HCL plan files
package catalog

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"
	"go.uber.org/zap"

	"bandwidth-cost/core/types"
	"bandwidth-cost/internal/errors"
	"bandwidth-cost/internal/logging"
)

// A plan file looks like:
//
//	plan "starter" {
//	  description = "Small sites"
//	  tier {
//	    up_to = 10
//	    price = 10.00
//	  }
//	  tier {
//	    price = 8.00
//	  }
//	}
//
// A tier without up_to is unbounded. Block order is catalog order.
type fileSchema struct {
	Plans []planBlock `hcl:"plan,block"`
}

type planBlock struct {
	Name        string      `hcl:"name,label"`
	Description string      `hcl:"description,optional"`
	Tiers       []tierBlock `hcl:"tier,block"`
}

type tierBlock struct {
	UpTo  hcl.Expression `hcl:"up_to,optional"`
	Price hcl.Expression `hcl:"price"`
}

// LoadFile reads and parses an HCL plan file
func LoadFile(path string) (*Catalog, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "read plan file %s", path)
	}
	return Parse(src, path)
}

// Parse decodes an HCL plan document and validates the resulting catalog
func Parse(src []byte, filename string) (*Catalog, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Parsing(fmt.Sprintf("parse plan file %s", filename), diags)
	}

	var schema fileSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &schema); diags.HasErrors() {
		return nil, errors.Parsing(fmt.Sprintf("decode plan file %s", filename), diags)
	}

	plans := make([]types.Plan, 0, len(schema.Plans))
	for _, block := range schema.Plans {
		plan, err := block.toPlan()
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	c, err := New(plans...)
	if err != nil {
		return nil, err
	}

	logging.Debug("Loaded plan catalog",
		zap.String("file", filename),
		zap.Int("plans", c.Len()),
	)
	return c, nil
}

func (b planBlock) toPlan() (types.Plan, error) {
	plan := types.Plan{
		Name:        types.PlanName(b.Name),
		Description: b.Description,
		Tiers:       make([]types.Tier, 0, len(b.Tiers)),
	}

	for i, tb := range b.Tiers {
		price, null, err := decimalAttr(tb.Price)
		if err != nil {
			return types.Plan{}, errors.Wrapf(errors.TypeParsing, err, "plan %q tier %d: price", b.Name, i)
		}
		if null {
			return types.Plan{}, errors.Newf(errors.TypeParsing, "plan %q tier %d: price is null", b.Name, i)
		}

		limit, unbounded, err := decimalAttr(tb.UpTo)
		if err != nil {
			return types.Plan{}, errors.Wrapf(errors.TypeParsing, err, "plan %q tier %d: up_to", b.Name, i)
		}

		bound := types.Unbounded()
		if !unbounded {
			bound = types.Bounded(limit)
		}
		plan.Tiers = append(plan.Tiers, types.Tier{UpTo: bound, Price: price})
	}

	return plan, nil
}

// decimalAttr evaluates a literal numeric expression. null reports an
// absent optional attribute or an explicit null.
func decimalAttr(expr hcl.Expression) (value decimal.Decimal, null bool, err error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return decimal.Zero, false, diags
	}
	if val.IsNull() {
		return decimal.Zero, true, nil
	}
	if !val.IsKnown() || val.Type() != cty.Number {
		return decimal.Zero, false, fmt.Errorf("expected a number, got %s", val.Type().FriendlyName())
	}

	value, err = decimal.NewFromString(val.AsBigFloat().Text('f', -1))
	if err != nil {
		return decimal.Zero, false, err
	}
	return value, false, nil
}
