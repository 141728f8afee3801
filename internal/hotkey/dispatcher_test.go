package hotkey

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type recorder struct {
	calls []string
}

var (
	escBinding   = key.NewBinding(key.WithKeys("esc"))
	enterBinding = key.NewBinding(key.WithKeys("enter"))
)

func record(name string, handled bool) Handler[*recorder] {
	return func(r *recorder, _ tea.KeyMsg) (tea.Cmd, bool) {
		r.calls = append(r.calls, name)
		return nil, handled
	}
}

func TestDispatch_NewestFirstAndStopsWhenHandled(t *testing.T) {
	d := New[*recorder]()
	d.Subscribe("a", "esc", escBinding, record("a", true))
	d.Subscribe("b", "esc", escBinding, record("b", true))

	r := &recorder{}
	if _, handled := d.Dispatch(r, tea.KeyMsg{Type: tea.KeyEsc}); !handled {
		t.Fatalf("Dispatch handled = false, want true")
	}
	if len(r.calls) != 1 || r.calls[0] != "b" {
		t.Fatalf("calls = %v, want [b]", r.calls)
	}
}

func TestDispatch_FallsThroughWhenNotHandled(t *testing.T) {
	d := New[*recorder]()
	d.Subscribe("a", "esc", escBinding, record("a", true))
	d.Subscribe("b", "esc", escBinding, record("b", false))

	r := &recorder{}
	d.Dispatch(r, tea.KeyMsg{Type: tea.KeyEsc})
	if len(r.calls) != 2 || r.calls[0] != "b" || r.calls[1] != "a" {
		t.Fatalf("calls = %v, want [b a]", r.calls)
	}

	r = &recorder{}
	if _, handled := d.Dispatch(r, tea.KeyMsg{Type: tea.KeyEnter}); handled || len(r.calls) != 0 {
		t.Fatalf("unmatched key: handled=%v calls=%v, want false and none", handled, r.calls)
	}
}

func TestSubscribe_SameOwnerAndNameReplaces(t *testing.T) {
	d := New[*recorder]()
	d.Subscribe("detail", "close", escBinding, record("first", true))
	d.Subscribe("detail", "close", escBinding, record("second", true))

	if d.Len() != 1 {
		t.Fatalf("Len = %d, want 1 (no duplicate listeners)", d.Len())
	}
	r := &recorder{}
	d.Dispatch(r, tea.KeyMsg{Type: tea.KeyEsc})
	if len(r.calls) != 1 || r.calls[0] != "second" {
		t.Fatalf("calls = %v, want [second]", r.calls)
	}
}

func TestUnsubscribe(t *testing.T) {
	d := New[*recorder]()
	stop := d.Subscribe("detail", "close", escBinding, record("detail", true))
	d.Subscribe("search", "focus", enterBinding, record("search", true))

	stop()
	stop()
	if d.Len() != 1 || d.Subscribed("detail") {
		t.Fatalf("after unsubscribe Len=%d Subscribed(detail)=%v, want 1 and false", d.Len(), d.Subscribed("detail"))
	}

	if n := d.UnsubscribeOwner("search"); n != 1 {
		t.Fatalf("UnsubscribeOwner = %d, want 1", n)
	}
	if d.Len() != 0 {
		t.Fatalf("Len = %d, want 0", d.Len())
	}
}

func TestDispatch_HandlerMayUnsubscribeItself(t *testing.T) {
	d := New[*recorder]()
	var stop func()
	stop = d.Subscribe("detail", "close", escBinding, func(r *recorder, _ tea.KeyMsg) (tea.Cmd, bool) {
		r.calls = append(r.calls, "closing")
		stop()
		return nil, true
	})

	r := &recorder{}
	d.Dispatch(r, tea.KeyMsg{Type: tea.KeyEsc})
	d.Dispatch(r, tea.KeyMsg{Type: tea.KeyEsc})
	if len(r.calls) != 1 {
		t.Fatalf("calls = %v, want exactly one", r.calls)
	}
}

func TestDispatch_DisabledBindingIgnored(t *testing.T) {
	d := New[*recorder]()
	b := key.NewBinding(key.WithKeys("esc"))
	b.SetEnabled(false)
	d.Subscribe("x", "esc", b, record("x", true))

	r := &recorder{}
	if _, handled := d.Dispatch(r, tea.KeyMsg{Type: tea.KeyEsc}); handled {
		t.Fatalf("disabled binding should not match")
	}
}
