package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/pr-poehali-dev/planeval/internal/tui/components"
)

func init() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

// Clicking inside a tab's rendered cells must select that tab, and the
// hitboxes must line up with what RenderTabBar actually draws.
func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}

		pos := 1
		for i, tab := range components.Tabs {
			tabW := components.TabVisualWidth(tab, i == active)

			if got := a.tabAtX(pos); got != i {
				t.Errorf("active=%d: click at x=%d (start of tab %d) = %d", active, pos, i, got)
			}
			if got := a.tabAtX(pos + tabW - 1); got != i {
				t.Errorf("active=%d: click at x=%d (end of tab %d) = %d", active, pos+tabW-1, i, got)
			}

			pos += tabW
			if i < len(components.Tabs)-1 {
				// Separator cells select nothing.
				if got := a.tabAtX(pos); got != -1 {
					t.Errorf("active=%d: click at x=%d (separator after tab %d) = %d", active, pos, i, got)
				}
				pos += 2
			}
		}

		if got := a.tabAtX(0); got != -1 {
			t.Errorf("active=%d: click at x=0 (leading space) = %d", active, got)
		}
		if got := a.tabAtX(pos + 5); got != -1 {
			t.Errorf("active=%d: click past the bar = %d", active, got)
		}
	}
}

func TestTabVisualWidthMatchesRender(t *testing.T) {
	for active := range components.Tabs {
		want := 1 // leading space
		for i, tab := range components.Tabs {
			want += components.TabVisualWidth(tab, i == active)
			if i < len(components.Tabs)-1 {
				want += 2
			}
		}

		bar := components.RenderTabBar(active, 200)
		if got := lipgloss.Width(bar); got != want {
			t.Errorf("active=%d: rendered width = %d, hitbox math says %d", active, got, want)
		}
	}
}
