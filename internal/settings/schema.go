package settings

import "errors"

var (
	ErrUnknownKey    = errors.New("unknown setting")
	ErrUnhandledKind = errors.New("unhandled input type")
	ErrBelowMinimum  = errors.New("value below minimum")
	ErrInvalidValue  = errors.New("invalid value")
	ErrUnknownOption = errors.New("unknown option")
)

// Kind is the UI affordance used to edit a setting.
type Kind string

const (
	KindColor    Kind = "color"
	KindCheckbox Kind = "checkbox"
	KindNumber   Kind = "number"
	KindSelect   Kind = "select"
)

type Value struct {
	Kind Kind
	// Min applies to KindNumber only; nil means unbounded.
	Min *int
	// Options are display names for KindSelect; the stored value is the
	// lower-cased option.
	Options []string
}

type Row struct {
	Key         Key
	Name        string
	Description string
	Value       Value
}

type Section struct {
	Name string
	Rows []Row
}

type Schema []Section

// Row returns the row bound to key.
func (schema Schema) Row(key Key) (Row, bool) {
	for _, section := range schema {
		for _, row := range section.Rows {
			if row.Key == key {
				return row, true
			}
		}
	}
	return Row{}, false
}

func minimum(n int) *int { return &n }

// DefaultSchema describes the settings form.
func DefaultSchema() Schema {
	return Schema{
		{
			Name: "Colors",
			Rows: []Row{
				{Key: BackgroundColor, Name: "Background color", Value: Value{Kind: KindColor}},
				{Key: LineColor, Name: "Line color", Value: Value{Kind: KindColor}},
			},
		},
		{
			Name: "Lines",
			Rows: []Row{
				{Key: LineCount, Name: "Line count", Value: Value{Kind: KindNumber, Min: minimum(1)}},
				{Key: LineWidth, Name: "Line width", Value: Value{Kind: KindNumber, Min: minimum(1)}},
				{Key: MaxLineLength, Name: "Max line length", Value: Value{Kind: KindNumber, Min: minimum(1)}},
				{
					Key:         AllowDifferentLineLengths,
					Name:        "Allow different line lengths",
					Description: "If this is checked, line lengths will be between 1 and the max length. If this is unchecked, all lines will be the max length.",
					Value:       Value{Kind: KindCheckbox},
				},
				{
					Key:         AllowDiagonals,
					Name:        "Allow diagonal lines",
					Description: "If this is No, only horizontal and vertical lines will be used. If this is Yes, horizontal, vertical, and diagonal lines will be used. If this is Only, only diagonal lines will be used.",
					Value:       Value{Kind: KindSelect, Options: []string{"No", "Yes", "Only"}},
				},
				{Key: Mirror, Name: "Mirror lines", Value: Value{Kind: KindCheckbox}},
				{
					Key:         DrawLive,
					Name:        "Draw live",
					Description: "If this is checked, each line will be drawn separately, as if part of an animation. Tapping the screen will stop an ongoing drawing. If this is unchecked, all lines will be drawn at once. Live drawing uses more energy, noticeably so for high line counts.",
					Value:       Value{Kind: KindCheckbox},
				},
			},
		},
		{
			Name: "Positioning",
			Rows: []Row{
				{Key: BeginInCenter, Name: "Begin in center", Value: Value{Kind: KindCheckbox}},
				{
					Key:         OutsideResetsToBeginning,
					Name:        "Move to origin when out of view",
					Description: "If this is checked, when a line would go outside of the view, drawing will begin from the first point created. If this is unchecked, new lines will be attempted until one doesn't go out of view.",
					Value:       Value{Kind: KindCheckbox},
				},
			},
		},
	}
}
