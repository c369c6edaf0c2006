package cart

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"io"
	"os"
	"strings"
)

// CouponTable maps an upper-case coupon code to its percentage discount
type CouponTable map[string]int

// DefaultCoupons returns the codes the store ships with
func DefaultCoupons() CouponTable {
	return CouponTable{
		"LUXE20": 20,
		"GEAR10": 10,
		"SAVE15": 15,
	}
}

// Lookup normalises code (trim, upper-case) and returns its percentage
func (t CouponTable) Lookup(code string) (string, int, bool) {
	normalized := NormalizeCode(code)
	pct, ok := t[normalized]
	if !ok || normalized == "" {
		return "", 0, false
	}
	return normalized, pct, true
}

// NormalizeCode is the form codes are stored and compared in
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type couponFile struct {
	Coupons map[string]int `yaml:"coupons"`
}

// ParseCoupons reads a YAML document of the form
//
//	coupons:
//	  LUXE20: 20
//	  GEAR10: 10
func ParseCoupons(r io.Reader) (CouponTable, error) {
	var f couponFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding coupons: %w", err)
	}

	table := CouponTable{}
	for code, pct := range f.Coupons {
		normalized := NormalizeCode(code)
		if normalized == "" {
			return nil, fmt.Errorf("coupon code must not be empty")
		}
		if pct < 1 || pct > 100 {
			return nil, fmt.Errorf("coupon %s: percentage %d outside 1-100", normalized, pct)
		}
		if _, dup := table[normalized]; dup {
			return nil, fmt.Errorf("coupon %s defined twice", normalized)
		}
		table[normalized] = pct
	}
	return table, nil
}

// LoadCoupons reads a coupon table from a YAML file
func LoadCoupons(path string) (CouponTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening coupons file: %w", err)
	}
	defer f.Close()
	return ParseCoupons(f)
}
