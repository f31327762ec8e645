package approve

import (
	"strings"

	"github.com/tranvictor/allowance/ui"
)

// Display writes p to u.
func Display(u ui.UI, p Prompt) {
	u.Section("Approve permission")
	u.Critical("%s", p.Title)
	u.Info("%s", p.Explanation)

	actions := make([]string, len(p.Actions))
	for i, a := range p.Actions {
		actions[i] = "[" + a + "]"
	}
	u.Info("%s", strings.Join(actions, "  "))

	u.Section(p.Fee.Title)
	u.Indent().Info("%s [%s]", p.Fee.Text, p.Fee.Action)

	u.Section("Details")
	rows := append([][2]string{{"Status", u.Style(p.Status)}}, p.Details...)
	u.KeyValue(rows)
}
