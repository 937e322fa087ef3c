package telegram

import (
	"fmt"
	"strings"

	"github.com/sandevgo/finadvisor/internal/service/advisor"
)

// renderResponse formats an advisory response as Markdown for the chat.
func renderResponse(resp *advisor.Response) string {
	var sb strings.Builder
	sb.WriteString(resp.Narrative)

	if resp.Profile != nil && len(resp.Allocation) > 0 {
		fmt.Fprintf(&sb, "\n\n**Suggested allocation (%s)**\n", resp.Profile)
		for _, a := range resp.Allocation {
			fmt.Fprintf(&sb, "- %s%% %s\n", a.Percent, a.AssetClass)
		}
	}
	if len(resp.CitedChunks) > 0 {
		fmt.Fprintf(&sb, "\n\n_Sources: %s_", strings.Join(resp.CitedChunks, ", "))
	}
	return strings.TrimSpace(sb.String())
}
