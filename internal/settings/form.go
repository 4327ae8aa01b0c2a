package settings

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

type FormOption struct {
	Label    string
	Value    string
	Selected bool
}

// FormControl is one generated input, bound to a setting key.
type FormControl struct {
	Key         Key
	Name        string
	Description string
	Kind        Kind
	Value       string
	Checked     bool
	Min         string
	Options     []FormOption
}

type FormSection struct {
	Name     string
	Controls []FormControl
}

// BuildForm walks schema and produces controls holding the values in current.
// A row with a kind the generator does not know is a schema bug and fails the
// whole form.
func BuildForm(schema Schema, current Settings) ([]FormSection, error) {
	sections := make([]FormSection, 0, len(schema))
	for _, section := range schema {
		out := FormSection{Name: section.Name}
		for _, row := range section.Rows {
			control, err := buildControl(row, current)
			if err != nil {
				return nil, fmt.Errorf("section %q: %w", section.Name, err)
			}
			out.Controls = append(out.Controls, control)
		}
		sections = append(sections, out)
	}
	return sections, nil
}

func buildControl(row Row, current Settings) (FormControl, error) {
	control := FormControl{
		Key:         row.Key,
		Name:        row.Name,
		Description: row.Description,
		Kind:        row.Value.Kind,
	}
	value := current.value(row.Key)
	switch row.Value.Kind {
	case KindSelect:
		selected := fmt.Sprint(value)
		for _, option := range row.Value.Options {
			data := strings.ToLower(option)
			control.Options = append(control.Options, FormOption{
				Label:    option,
				Value:    data,
				Selected: data == selected,
			})
		}
		control.Value = selected
	case KindCheckbox:
		checked, _ := value.(bool)
		control.Checked = checked
		control.Value = strconv.FormatBool(checked)
	case KindNumber:
		control.Value = fmt.Sprint(value)
		if row.Value.Min != nil {
			control.Min = strconv.Itoa(*row.Value.Min)
		}
	case KindColor:
		control.Value = fmt.Sprint(value)
	default:
		return FormControl{}, fmt.Errorf("%w: %s", ErrUnhandledKind, row.Value.Kind)
	}
	return control, nil
}

// ParseValue converts a raw submitted value into the typed value Set expects.
func ParseValue(row Row, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch row.Value.Kind {
	case KindColor:
		normalized, err := NormalizeColor(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", row.Key, err)
		}
		return normalized, nil
	case KindCheckbox:
		switch strings.ToLower(raw) {
		case "on", "true", "1", "yes":
			return true, nil
		case "", "off", "false", "0", "no":
			return false, nil
		}
		return nil, fmt.Errorf("%s: %w: %q is not a boolean", row.Key, ErrInvalidValue, raw)
	case KindNumber:
		return parseNumber(row, raw)
	case KindSelect:
		data := strings.ToLower(raw)
		for _, option := range row.Value.Options {
			if strings.ToLower(option) == data {
				if row.Key == AllowDiagonals {
					return Diagonals(data), nil
				}
				return data, nil
			}
		}
		return nil, fmt.Errorf("%s: %w: %q", row.Key, ErrUnknownOption, raw)
	default:
		return nil, fmt.Errorf("%s: %w: %s", row.Key, ErrUnhandledKind, row.Value.Kind)
	}
}

func parseNumber(row Row, raw string) (any, error) {
	if row.Key == LineWidth {
		width, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(width) || math.IsInf(width, 0) {
			return nil, fmt.Errorf("%s: %w: %q is not a finite number", row.Key, ErrInvalidValue, raw)
		}
		if row.Value.Min != nil && width < float64(*row.Value.Min) {
			return nil, fmt.Errorf("%s: %w %d", row.Key, ErrBelowMinimum, *row.Value.Min)
		}
		return width, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %q is not an integer", row.Key, ErrInvalidValue, raw)
	}
	if row.Value.Min != nil && n < *row.Value.Min {
		return nil, fmt.Errorf("%s: %w %d", row.Key, ErrBelowMinimum, *row.Value.Min)
	}
	return n, nil
}

// NormalizeColor parses a hex colour and returns it as lower-case #rrggbb.
func NormalizeColor(raw string) (string, error) {
	parsed, err := colorful.Hex(raw)
	if err != nil {
		return "", fmt.Errorf("%w: colour %q: %v", ErrInvalidValue, raw, err)
	}
	return parsed.Hex(), nil
}

// ParseColor parses a stored colour string for drawing. Unparseable values fall
// back to fallback.
func ParseColor(raw string, fallback color.Color) color.Color {
	parsed, err := colorful.Hex(raw)
	if err != nil {
		return fallback
	}
	r, g, b := parsed.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}
