package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf_WrappedError(t *testing.T) {
	base := errors.New("dial tcp: connection refused")
	err := Wrap(ServiceUnavailable, "plantdb.Get", "plant CAIRO unavailable", base)

	wrapped := fmt.Errorf("handler: %w", err)

	kind, ok := KindOf(wrapped)
	if !ok {
		t.Fatal("expected classified error")
	}
	if kind != ServiceUnavailable {
		t.Errorf("expected ServiceUnavailable, got %v", kind)
	}
	if !errors.Is(wrapped, base) {
		t.Error("expected underlying error to be preserved")
	}
}

func TestKindOf_UnclassifiedError(t *testing.T) {
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Error("plain error must not report a kind")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{BadRequest, http.StatusBadRequest},
		{NotFound, http.StatusNotFound},
		{Forbidden, http.StatusForbidden},
		{ServiceUnavailable, http.StatusServiceUnavailable},
		{Kind(99), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.kind.HTTPStatus(); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestIsKind(t *testing.T) {
	err := New(NotFound, "registry.Resolve", "unknown plant %q", "ATLANTIS")
	if !IsKind(err, NotFound) {
		t.Error("expected NotFound kind")
	}
	if IsKind(err, Forbidden) {
		t.Error("did not expect Forbidden kind")
	}
}
