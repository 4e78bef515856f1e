package i18n

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadWorkbook overlays translations from an xlsx file onto c. The first
// sheet must have a header row naming "key" and one column per language;
// unknown language columns are ignored. Returns the number of cells applied.
func (c *Catalog) LoadWorkbook(path string) (int, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return 0, err
	}
	defer x.Close()

	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return 0, fmt.Errorf("%s: no sheets", path)
	}
	rows, err := x.GetRows(sheets[0])
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("%s: empty sheet %q", path, sheets[0])
	}

	keyCol := -1
	langCols := map[int]Language{}
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if strings.EqualFold(h, "key") {
			keyCol = i
			continue
		}
		if lang, err := ParseLanguage(h); err == nil {
			langCols[i] = lang
		}
	}
	if keyCol < 0 {
		return 0, fmt.Errorf("%s: header has no key column", path)
	}

	n := 0
	for _, row := range rows[1:] {
		if keyCol >= len(row) {
			continue
		}
		key := strings.TrimSpace(row[keyCol])
		if key == "" {
			continue
		}
		for col, lang := range langCols {
			if col >= len(row) || strings.TrimSpace(row[col]) == "" {
				continue
			}
			c.Set(lang, key, strings.TrimSpace(row[col]))
			n++
		}
	}
	return n, nil
}
