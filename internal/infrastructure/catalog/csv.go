// Package catalog lee el catálogo de productos exportado desde la hoja de cálculo de compras.
//
// Formato: cabecera con sku, name, price y min_selling_price (el orden de columnas es libre),
// separador ';' o ','. Los archivos exportados desde Excel en Windows vienen en ISO-8859-1.
package catalog

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Electrotienda-api/internal/domain/entity"
)

// Charsets soportados.
const (
	CharsetUTF8   = "utf-8"
	CharsetLatin1 = "iso-8859-1"
)

var requiredColumns = []string{"sku", "name", "price"}

// ParseCSV devuelve los productos del archivo. Cada producto trae ID nuevo; quien persiste
// decide si lo conserva (alta) o lo reemplaza por el existente del mismo SKU.
func ParseCSV(r io.Reader, charset string) ([]*entity.Product, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", CharsetUTF8, "utf8":
	case CharsetLatin1, "iso8859-1", "latin1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	default:
		return nil, fmt.Errorf("catalog: charset no soportado %q", charset)
	}

	br := bufio.NewReader(r)
	first, err := br.Peek(512)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("catalog: leer cabecera: %w", err)
	}
	cr := csv.NewReader(br)
	cr.Comma = detectComma(first)
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("catalog: leer cabecera: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("catalog: falta la columna %q", col)
		}
	}

	now := time.Now().UTC()
	seen := make(map[string]int)
	var out []*entity.Product
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog: línea %d: %w", line, err)
		}
		sku := strings.TrimSpace(field(rec, idx, "sku"))
		if sku == "" {
			continue
		}
		price, err := parseMoney(field(rec, idx, "price"))
		if err != nil {
			return nil, fmt.Errorf("catalog: línea %d: price: %w", line, err)
		}
		minPrice := decimal.Zero
		if raw := field(rec, idx, "min_selling_price"); strings.TrimSpace(raw) != "" {
			if minPrice, err = parseMoney(raw); err != nil {
				return nil, fmt.Errorf("catalog: línea %d: min_selling_price: %w", line, err)
			}
		}
		if price.IsNegative() || minPrice.IsNegative() {
			return nil, fmt.Errorf("catalog: línea %d: precios negativos", line)
		}
		p := &entity.Product{
			ID:              uuid.NewString(),
			SKU:             sku,
			Name:            strings.TrimSpace(field(rec, idx, "name")),
			Price:           price,
			MinSellingPrice: minPrice,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		// La última fila de un SKU repetido gana
		if i, ok := seen[sku]; ok {
			p.ID = out[i].ID
			out[i] = p
			continue
		}
		seen[sku] = len(out)
		out = append(out, p)
	}
	return out, nil
}

func field(rec []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}

func detectComma(head []byte) rune {
	line := string(head)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}

// parseMoney acepta "1234.5", "1234,5", "1.700.000" y "1.234.567,89".
func parseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	switch {
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}
	return decimal.NewFromString(s)
}
