package listing

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

// Query parameter names shared by every listing endpoint.
const (
	ParamPage  = "page"
	ParamLimit = "limit"
	ParamSort  = "sort"
	ParamOrder = "order"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Match tag values understood by ParseQuery.
const (
	MatchExact  = "exact"
	MatchSearch = "search"
	MatchGTE    = "gte"
	MatchLTE    = "lte"
)

// ParseQuery builds a Request from query values. The filter struct declares
// the accepted filter parameters through tags:
//
//	Size   string `query:"size" column:"size" match:"exact" enum:"S|M|L"`
//	Search string `query:"search" column:"name,address" match:"search"`
//	User   uint   `query:"user" column:"user_id" required:"true"`
//
// A comma separated column list is OR-ed. When filter is a pointer its fields
// receive the parsed values. Sortable maps public sort names to columns.
//
// Malformed optional terms are skipped and returned as warnings. A missing or
// malformed required term is returned as the error.
func ParseQuery(values url.Values, filter any, sortable map[string]string) (Request, []*ValidationFailure, error) {
	var warnings []*ValidationFailure

	// Non-numeric pagination falls to zero and is normalized later.
	page, _ := strconv.Atoi(strings.TrimSpace(values.Get(ParamPage)))
	limit, _ := strconv.Atoi(strings.TrimSpace(values.Get(ParamLimit)))
	req := Request{Page: page, Limit: limit}

	structValue := reflect.ValueOf(filter)
	if structValue.Kind() == reflect.Ptr {
		structValue = structValue.Elem()
	}

	if structValue.Kind() == reflect.Struct {
		structType := structValue.Type()

		for i := 0; i < structType.NumField(); i++ {
			field := structType.Field(i)
			if !field.IsExported() {
				continue
			}

			queryTag := field.Tag.Get("query")
			if queryTag == "" {
				queryTag = toCamelCase(field.Name)
			}
			if queryTag == "-" {
				continue
			}
			columns := splitColumns(field.Tag.Get("column"), queryTag)
			required := field.Tag.Get("required") == "true"

			raw := strings.TrimSpace(values.Get(queryTag))
			if raw == "" {
				if required {
					return Request{}, warnings, &ValidationFailure{Field: queryTag, Reason: "is required"}
				}
				continue
			}

			value, failure := convertValue(field, queryTag, raw)
			if failure != nil {
				if required {
					return Request{}, warnings, failure
				}
				warnings = append(warnings, failure)
				continue
			}

			if fv := structValue.Field(i); fv.CanSet() {
				fv.Set(reflect.ValueOf(value).Convert(field.Type))
			}

			req.Filters = append(req.Filters, Condition{
				Fields: columns,
				Op:     matchOp(field.Tag.Get("match")),
				Value:  value,
			})
		}
	}

	sort, sortWarnings := parseSort(values.Get(ParamSort), values.Get(ParamOrder), sortable)
	req.Sort = sort
	warnings = append(warnings, sortWarnings...)

	return req, warnings, nil
}

func matchOp(tag string) Op {
	switch tag {
	case MatchSearch:
		return OpContains
	case MatchGTE:
		return OpGTE
	case MatchLTE:
		return OpLTE
	default:
		return OpEqual
	}
}

func convertValue(field reflect.StructField, name, raw string) (any, *ValidationFailure) {
	switch field.Type.Kind() {
	case reflect.String:
		if enum := field.Tag.Get("enum"); enum != "" {
			for _, allowed := range strings.Split(enum, "|") {
				if raw == allowed {
					return raw, nil
				}
			}
			return nil, &ValidationFailure{Field: name, Value: raw, Reason: "must be one of " + strings.ReplaceAll(enum, "|", ", ")}
		}
		return raw, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(raw, 10, field.Type.Bits())
		if err != nil {
			return nil, &ValidationFailure{Field: name, Value: raw, Reason: "must be an integer"}
		}
		return v, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(raw, 10, field.Type.Bits())
		if err != nil {
			return nil, &ValidationFailure{Field: name, Value: raw, Reason: "must be a positive integer"}
		}
		return v, nil
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(raw, field.Type.Bits())
		if err != nil {
			return nil, &ValidationFailure{Field: name, Value: raw, Reason: "must be a number"}
		}
		return v, nil
	case reflect.Bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, &ValidationFailure{Field: name, Value: raw, Reason: "must be true or false"}
		}
		return v, nil
	default:
		return nil, &ValidationFailure{Field: name, Value: raw, Reason: "unsupported filter type " + field.Type.Kind().String()}
	}
}

// parseSort reads "price,-createdAt". A legacy order=desc applies to terms
// without a sign.
func parseSort(raw, order string, sortable map[string]string) ([]SortField, []*ValidationFailure) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	defaultDesc := strings.EqualFold(strings.TrimSpace(order), OrderDesc)

	var (
		out      []SortField
		warnings []*ValidationFailure
		seen     = make(map[string]bool)
	)
	for _, term := range strings.Split(raw, ",") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		desc := defaultDesc
		switch term[0] {
		case '-':
			desc, term = true, term[1:]
		case '+':
			desc, term = false, term[1:]
		}
		column, ok := sortable[term]
		if !ok {
			warnings = append(warnings, &ValidationFailure{Field: ParamSort, Value: term, Reason: "is not a sortable field"})
			continue
		}
		if seen[column] {
			continue
		}
		seen[column] = true
		out = append(out, SortField{Field: column, Desc: desc})
	}
	return out, warnings
}

func splitColumns(tag, fallback string) []string {
	if tag == "" {
		return []string{toSnakeCase(fallback)}
	}
	var cols []string
	for _, c := range strings.Split(tag, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cols = append(cols, c)
		}
	}
	return cols
}

func toSnakeCase(s string) string {
	var result []rune
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			result = append(result, '_')
		}
		result = append(result, unicode.ToLower(r))
	}
	return string(result)
}

func toCamelCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
