package store

import (
	"strconv"
	"strings"
)

// where собирает условие WHERE с позиционными параметрами $1, $2, ...
type where struct {
	conds []string
	args  []any
}

// add appends cond, replacing its single "?" with the next placeholder.
func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.Replace(cond, "?", "$"+strconv.Itoa(len(w.args)), 1))
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// likeEscape экранирует спецсимволы ILIKE
func likeEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// idList - значения string_agg(id::text, ',') в []int64
func idList(s string) []int64 {
	if s == "" {
		return []int64{}
	}
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// idsAgg - подзапрос списка связанных id
func idsAgg(column, table, key, owner string) string {
	return "COALESCE((SELECT string_agg(" + column + "::text, ',' ORDER BY " + column + ")" +
		" FROM " + table + " WHERE " + key + " = " + owner + "), '')"
}
