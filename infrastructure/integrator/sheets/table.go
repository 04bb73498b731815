package sheets

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Cell é uma célula gviz: V é o valor bruto e F o texto formatado
type Cell struct {
	V any    `json:"v"`
	F string `json:"f"`
}

// Row indexa as células pelo nome normalizado da coluna
type Row map[string]*Cell

// Table é uma aba da planilha com colunas nomeadas pelo cabeçalho
type Table struct {
	Columns []string
	Rows    []Row
}

func newTable(raw *gvizTable) *Table {
	table := &Table{}
	if raw == nil {
		return table
	}

	for _, col := range raw.Cols {
		name := col.Label
		if strings.TrimSpace(name) == "" {
			name = col.ID
		}
		table.Columns = append(table.Columns, normalizeColumn(name))
	}

	for _, r := range raw.Rows {
		row := make(Row, len(table.Columns))
		empty := true
		for i, cell := range r.C {
			if i >= len(table.Columns) || cell == nil || cell.V == nil {
				continue
			}
			row[table.Columns[i]] = cell
			empty = false
		}
		if !empty {
			table.Rows = append(table.Rows, row)
		}
	}

	return table
}

func normalizeColumn(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, " ", "_")
}

// HasColumn indica se o cabeçalho contém a coluna
func (t *Table) HasColumn(name string) bool {
	name = normalizeColumn(name)
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// String retorna o valor textual da célula, vazio quando ausente
func (r Row) String(column string) string {
	cell, ok := r[column]
	if !ok || cell == nil || cell.V == nil {
		return ""
	}

	switch v := cell.V.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// Float retorna o valor numérico da célula. Texto com vírgula decimal é aceito.
func (r Row) Float(column string) (float64, error) {
	cell, ok := r[column]
	if !ok || cell == nil || cell.V == nil {
		return 0, nil
	}

	switch v := cell.V.(type) {
	case float64:
		return v, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, nil
		}
		if strings.Contains(s, ",") {
			s = strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("valor numérico inválido %q", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("valor numérico inválido %v", v)
	}
}

func (r Row) Int(column string) (int64, error) {
	f, err := r.Float(column)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

// Time interpreta a célula como data; ok é false quando vazia ou inválida
func (r Row) Time(column string) (time.Time, bool) {
	return ParseGvizDate(r.String(column))
}

// List separa um texto por vírgula ou ponto e vírgula
func (r Row) List(column string) []string {
	raw := r.String(column)
	if raw == "" {
		return nil
	}

	parts := strings.FieldsFunc(raw, func(c rune) bool { return c == ',' || c == ';' })
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}
