package services

import "strconv"

// The remote keys entities by numeric ids while the domain uses strings.
// Bodies therefore coerce ids back to numbers on the way out; a value the
// remote would reject anyway is sent as null rather than as a garbage string.

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func formatIDs(ids []int64) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, formatID(id))
	}
	return out
}

func remoteID(id string) interface{} {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil
	}
	return n
}

func remoteIDs(ids []string) []interface{} {
	out := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		out = append(out, remoteID(id))
	}
	return out
}

// nullable maps an empty optional to an explicit JSON null, which is how the
// remote clears a field.
func nullable(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
