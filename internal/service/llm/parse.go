package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iamasit07/gomoku-agent/internal/domain"
)

var (
	ErrNoJSON        = errors.New("no json object in response")
	ErrNoCoordinates = errors.New("response has no usable row/col")
)

// ExtractJSON returns the first balanced {...} object in text. Braces inside
// JSON strings are ignored, so prose and code fences around the object are
// skipped.
func ExtractJSON(text string) (string, bool) {
	for start := strings.IndexByte(text, '{'); start >= 0; {
		depth := 0
		inString := false
		escaped := false
		for i := start; i < len(text); i++ {
			ch := text[i]
			if inString {
				switch {
				case escaped:
					escaped = false
				case ch == '\\':
					escaped = true
				case ch == '"':
					inString = false
				}
				continue
			}
			switch ch {
			case '"':
				inString = true
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					candidate := text[start : i+1]
					if json.Valid([]byte(candidate)) {
						return candidate, true
					}
					i = len(text)
				}
			}
		}
		next := strings.IndexByte(text[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", false
}

// ParseMove pulls the row/col recommendation out of free-form model output.
// It does not check legality; that is up to the caller.
func ParseMove(text string) (domain.Move, error) {
	raw, ok := ExtractJSON(text)
	if !ok {
		return domain.Move{}, ErrNoJSON
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return domain.Move{}, fmt.Errorf("%w: %v", ErrNoJSON, err)
	}

	row, err := coerceInt(fields["row"])
	if err != nil {
		return domain.Move{}, fmt.Errorf("%w: row: %v", ErrNoCoordinates, err)
	}
	col, err := coerceInt(fields["col"])
	if err != nil {
		return domain.Move{}, fmt.Errorf("%w: col: %v", ErrNoCoordinates, err)
	}
	return domain.Move{Row: row, Col: col}, nil
}

func coerceInt(v any) (int, error) {
	switch t := v.(type) {
	case nil:
		return 0, errors.New("missing")
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, err
		}
		return integral(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", t)
		}
		return integral(f)
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}

func integral(f float64) (int, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("not an integer: %v", f)
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, fmt.Errorf("out of range: %v", f)
	}
	return int(f), nil
}
