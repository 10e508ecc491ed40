package support

import (
	"context"
	"testing"
	"time"

	"yatra/pkg/utils"
)

func TestMemoryConversationStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryConversationStore(time.Minute)

	if _, ok, _ := store.Get(ctx, "s1"); ok {
		t.Fatalf("expected no context before Set")
	}
	if err := store.Set(ctx, "s1", utils.ChatContext{UserID: "u1", Language: "hi"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cc, ok, err := store.Get(ctx, "s1")
	if err != nil || !ok || cc.Language != "hi" {
		t.Fatalf("unexpected context %+v ok=%v err=%v", cc, ok, err)
	}
	_ = store.Delete(ctx, "s1")
	if _, ok, _ := store.Get(ctx, "s1"); ok {
		t.Fatalf("expected context to be deleted")
	}
}
