package store

import "testing"

func TestPushSubscriptionUpsert(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserStore(db)
	s := NewPushStore(db)

	user, _ := users.Create("alice@example.com", "Alice", "h")

	sub, err := s.CreateSubscription(user.ID, "https://push.example/abc", "p256dh", "auth", "phone")
	if err != nil {
		t.Fatalf("create subscription: %v", err)
	}
	if sub.ID == 0 {
		t.Error("expected non-zero id")
	}

	// Same endpoint refreshes keys instead of inserting a second row.
	sub2, err := s.CreateSubscription(user.ID, "https://push.example/abc", "p256dh2", "auth2", "phone")
	if err != nil {
		t.Fatalf("upsert subscription: %v", err)
	}
	if sub2.ID != sub.ID {
		t.Errorf("upsert created new row: %d != %d", sub2.ID, sub.ID)
	}
	if sub2.P256dhKey != "p256dh2" {
		t.Errorf("p256dh key = %q, want refreshed", sub2.P256dhKey)
	}

	subs, err := s.ListByUser(user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subs) != 1 {
		t.Errorf("got %d subscriptions, want 1", len(subs))
	}
}

func TestPushSubscriptionDelete(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserStore(db)
	s := NewPushStore(db)

	alice, _ := users.Create("alice@example.com", "Alice", "h")
	bob, _ := users.Create("bob@example.com", "Bob", "h")

	sub, _ := s.CreateSubscription(alice.ID, "https://push.example/abc", "k", "a", "phone")

	// Another user cannot remove it.
	if err := s.Delete(sub.ID, bob.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	subs, _ := s.ListByUser(alice.ID)
	if len(subs) != 1 {
		t.Fatal("subscription removed by wrong user")
	}

	if err := s.Delete(sub.ID, alice.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	subs, _ = s.ListByUser(alice.ID)
	if len(subs) != 0 {
		t.Error("subscription not removed")
	}
}

func TestPushSubscriptionDeleteByEndpoint(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserStore(db)
	s := NewPushStore(db)

	user, _ := users.Create("alice@example.com", "Alice", "h")
	s.CreateSubscription(user.ID, "https://push.example/expired", "k", "a", "")

	if err := s.DeleteByEndpoint("https://push.example/expired"); err != nil {
		t.Fatalf("delete by endpoint: %v", err)
	}
	subs, _ := s.ListByUser(user.ID)
	if len(subs) != 0 {
		t.Error("expired subscription not removed")
	}
}
