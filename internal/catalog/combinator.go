package catalog

import (
	"sort"
	"strings"

	"github.com/hollis/threadbare/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultVariantTitle is used when no option values resolve for a variant.
const DefaultVariantTitle = "Default"

// VariantBase carries shared attributes applied uniformly to every
// skeleton produced by Combine.
type VariantBase struct {
	Price          *decimal.Decimal
	CompareAtPrice *decimal.Decimal
	Inventory      *int32
	SKUPrefix      string
}

// Combine expands ordered option lists into the cartesian set of variant
// skeletons, in row-major order with the first option varying slowest.
// For N options with k_i values each the output has ∏k_i skeletons; zero
// options yield a single skeleton with empty optionValues.
func Combine(options []domain.OptionInput, base VariantBase) []domain.VariantInput {
	total := 1
	for _, opt := range options {
		total *= len(opt.Values)
	}
	if total == 0 {
		return nil
	}

	skeletons := make([]domain.VariantInput, 0, total)
	indices := make([]int, len(options))

	for n := 0; n < total; n++ {
		values := make(map[string]string, len(options))
		parts := make([]string, 0, len(options))
		for i, opt := range options {
			v := opt.Values[indices[i]]
			values[opt.Name] = v
			parts = append(parts, skuPart(v))
		}

		skeletons = append(skeletons, domain.VariantInput{
			Price:          base.Price,
			CompareAtPrice: base.CompareAtPrice,
			Inventory:      base.Inventory,
			OptionValues:   values,
			SKU:            synthesizeSKU(base.SKUPrefix, parts),
		})

		// Advance the odometer: last option cycles fastest.
		for i := len(indices) - 1; i >= 0; i-- {
			indices[i]++
			if indices[i] < len(options[i].Values) {
				break
			}
			indices[i] = 0
		}
	}

	return skeletons
}

// synthesizeSKU joins the prefix with upper-cased, whitespace-stripped
// option values. Without a prefix no SKU is synthesized.
func synthesizeSKU(prefix string, parts []string) *string {
	if prefix == "" {
		return nil
	}
	sku := strings.Join(append([]string{prefix}, parts...), "-")
	return &sku
}

func skuPart(value string) string {
	return strings.ToUpper(strings.Join(strings.Fields(value), ""))
}

// DeriveTitle resolves a variant's display title. An explicit title wins;
// otherwise the variant's non-blank values are joined with " / " in the
// product's declared option order, falling back to "Default".
func DeriveTitle(explicit *string, optionOrder []string, optionValues map[string]string) string {
	if explicit != nil && strings.TrimSpace(*explicit) != "" {
		return *explicit
	}

	parts := make([]string, 0, len(optionOrder))
	for _, name := range optionOrder {
		if v := strings.TrimSpace(optionValues[name]); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return DefaultVariantTitle
	}
	return strings.Join(parts, " / ")
}

// InferOptions derives option declarations from the union of option-name
// keys across the submitted variants, preserving first-seen order, each
// mapped to the distinct values observed in first-seen order. Within a
// single variant keys are visited in sorted order since Go maps carry no
// ordering of their own.
func InferOptions(variants []domain.VariantInput) []domain.OptionInput {
	var names []string
	valuesByName := make(map[string][]string)
	seen := make(map[string]map[string]bool)

	for _, v := range variants {
		keys := make([]string, 0, len(v.OptionValues))
		for k := range v.OptionValues {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, name := range keys {
			value := strings.TrimSpace(v.OptionValues[name])
			if value == "" {
				continue
			}
			if seen[name] == nil {
				seen[name] = make(map[string]bool)
				names = append(names, name)
			}
			if !seen[name][value] {
				seen[name][value] = true
				valuesByName[name] = append(valuesByName[name], value)
			}
		}
	}

	options := make([]domain.OptionInput, 0, len(names))
	for _, name := range names {
		options = append(options, domain.OptionInput{Name: name, Values: valuesByName[name]})
	}
	return options
}
