package components

import (
	"strings"
	"testing"
	"time"

	"github.com/kerbaras/mangaverse/pkg/app/styles"
)

func TestSliderWrapsAround(t *testing.T) {
	s := NewSlider(testEntries(3), 5*time.Second)

	s.Prev()
	if s.Index() != 2 {
		t.Errorf("Expected Prev from first slide to wrap to 2, got %d", s.Index())
	}
	s.Next()
	if s.Index() != 0 {
		t.Errorf("Expected Next from last slide to wrap to 0, got %d", s.Index())
	}
	s.GoTo(7)
	if s.Index() != 1 {
		t.Errorf("Expected GoTo(7) on 3 slides to land on 1, got %d", s.Index())
	}
	s.GoTo(-1)
	if s.Index() != 2 {
		t.Errorf("Expected GoTo(-1) to land on 2, got %d", s.Index())
	}
}

func TestSliderAutoplayAdvances(t *testing.T) {
	s := NewSlider(testEntries(3), 5*time.Second)
	if s.Init() == nil {
		t.Fatal("Expected autoplay to be scheduled")
	}

	cmd := s.Update(SlideTickMsg{gen: s.gen})
	if s.Index() != 1 {
		t.Errorf("Expected tick to advance to 1, got %d", s.Index())
	}
	if cmd == nil {
		t.Error("Expected next tick to be scheduled")
	}
}

func TestSliderIgnoresStaleTicks(t *testing.T) {
	s := NewSlider(testEntries(3), 5*time.Second)
	stale := SlideTickMsg{gen: s.gen}

	s.Next()
	if cmd := s.Update(stale); cmd != nil {
		t.Error("Expected stale tick to schedule nothing")
	}
	if s.Index() != 1 {
		t.Errorf("Expected stale tick not to move the slider, got %d", s.Index())
	}
}

func TestSliderPausesOnHover(t *testing.T) {
	s := NewSlider(testEntries(3), 5*time.Second)
	pending := SlideTickMsg{gen: s.gen}

	if cmd := s.SetHovered(true); cmd != nil {
		t.Error("Expected hover to stop autoplay")
	}
	if !s.Paused() {
		t.Fatal("Expected slider to be paused")
	}
	s.Update(pending)
	if s.Index() != 0 {
		t.Errorf("Expected paused slider to stay on 0, got %d", s.Index())
	}

	if cmd := s.SetHovered(false); cmd == nil {
		t.Error("Expected leaving the slider to resume autoplay")
	}
	s.Update(SlideTickMsg{gen: s.gen})
	if s.Index() != 1 {
		t.Errorf("Expected resumed slider to advance, got %d", s.Index())
	}
}

func TestSliderSingleItemDoesNotAutoplay(t *testing.T) {
	s := NewSlider(testEntries(1), 5*time.Second)
	if s.Init() != nil {
		t.Error("Expected no autoplay for a single slide")
	}
}

func TestSliderView(t *testing.T) {
	theme := styles.Dark()
	s := NewSlider(testEntries(2), 0)

	if !strings.Contains(s.View(&theme), "Solo Leveling") {
		t.Error("Expected current title in view")
	}
	s.SetHovered(true)
	if !strings.Contains(s.View(&theme), "paused") {
		t.Error("Expected paused marker while hovered")
	}

	empty := NewSlider(nil, 0)
	if empty.Current() != nil {
		t.Error("Expected no current entry")
	}
	if !strings.Contains(empty.View(&theme), "Nothing featured") {
		t.Error("Expected empty text")
	}
}
