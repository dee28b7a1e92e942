package components

import (
	"strings"
	"testing"
	"time"

	"github.com/kerbaras/mangaverse/pkg/app/styles"
)

func TestToastExpires(t *testing.T) {
	var toast Toast
	if cmd := toast.Show(ToastError, "Minimum Purchase", "Minimum purchase is 10 coins", time.Second); cmd == nil {
		t.Fatal("Expected expiry to be scheduled")
	}
	first := ToastExpiredMsg{id: toast.id}

	toast.Show(ToastSuccess, "Purchase Successful", "", time.Second)
	toast.Update(first)
	if !toast.Visible() {
		t.Fatal("Expected expiry of a replaced toast to be ignored")
	}

	toast.Update(ToastExpiredMsg{id: toast.id})
	if toast.Visible() {
		t.Error("Expected toast to be hidden")
	}
}

func TestToastView(t *testing.T) {
	theme := styles.Dark()
	var toast Toast
	if toast.View(&theme) != "" {
		t.Error("Expected hidden toast to render nothing")
	}

	toast.Show(ToastError, "Email Required", "Please enter your PayPal email address", time.Second)
	view := toast.View(&theme)
	if !strings.Contains(view, "Email Required") || !strings.Contains(view, "PayPal") {
		t.Errorf("Expected title and message in view, got %q", view)
	}

	toast.Hide()
	if toast.Visible() {
		t.Error("Expected Hide to hide")
	}
}
