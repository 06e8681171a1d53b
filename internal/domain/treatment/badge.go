package treatment

// Badge is the display style attached to a status wherever it is rendered:
// a background fill, a text color, and a dot color.
type Badge struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	Dot        string `json:"dot"`
}

var (
	badgeSuccess    = Badge{Background: "#f6ffed", Text: "#389e0d", Dot: "#52c41a"}
	badgeProcessing = Badge{Background: "#e6f4ff", Text: "#0958d9", Dot: "#1677ff"}
	badgeError      = Badge{Background: "#fff1f0", Text: "#cf1322", Dot: "#ff4d4f"}
	badgeWarning    = Badge{Background: "#fffbe6", Text: "#d48806", Dot: "#faad14"}
	badgeNeutral    = Badge{Background: "#fafafa", Text: "#595959", Dot: "#d9d9d9"}
)

var badges = map[string]Badge{
	StatusPlanned:    badgeProcessing,
	StatusInProgress: badgeProcessing,
	StatusCompleted:  badgeSuccess,
	StatusCancelled:  badgeError,
	StepCurrent:      badgeProcessing,
	StepPending:      badgeNeutral,
	"confirmed":      badgeSuccess,
	"failed":         badgeError,
	"no-show":        badgeWarning,
}

// BadgeFor maps any status string to a style triple. Unknown statuses get
// the neutral style rather than an error.
func BadgeFor(status string) Badge {
	if b, ok := badges[status]; ok {
		return b
	}
	return badgeNeutral
}
