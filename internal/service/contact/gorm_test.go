package contact_test

import (
	"context"
	"errors"
	"maps"
	"testing"

	"github.com/arvela/contactbook/internal/service/contact"
	"github.com/arvela/contactbook/internal/service/user"
	"github.com/arvela/contactbook/internal/testutil"
)

func newStores(t *testing.T) (*user.GormStore, *contact.GormStore) {
	t.Helper()
	db := testutil.OpenDB(t, user.Row(), contact.Row())
	users := user.NewGormStore(db)
	return users, contact.NewGormStore(db, users)
}

func registerUser(t *testing.T, users *user.GormStore, id, username string) *user.User {
	t.Helper()
	u, err := users.Create(context.Background(), id, user.CreateParams{Username: username})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func TestCreateBindsOwnerToCaller(t *testing.T) {
	ctx := context.Background()
	users, store := newStores(t)
	robert := registerUser(t, users, "uid-robert", "robert")

	c, err := store.Create(ctx, robert.ID, testutil.ContactParams("Mom"))
	if err != nil {
		t.Fatalf("create contact: %v", err)
	}
	if c.OwnerID != robert.ID {
		t.Errorf("expected owner %s, got %s", robert.ID, c.OwnerID)
	}
	if c.ID == "" {
		t.Error("expected a generated contact id")
	}
}

func TestCreateForUnknownUserFails(t *testing.T) {
	_, store := newStores(t)

	_, err := store.Create(context.Background(), "uid-ghost", testutil.ContactParams("Mom"))
	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected user.ErrNotFound, got %v", err)
	}
}

func TestRoundTripPreservesMappings(t *testing.T) {
	ctx := context.Background()
	users, store := newStores(t)
	robert := registerUser(t, users, "uid-robert", "robert")

	params := contact.CreateParams{
		Name:         "Mom",
		PhoneNumbers: map[string]string{"home": "+15551234567"},
		Emails:       map[string]string{"personal": "mom@example.com"},
		Addresses:    map[string]contact.Address{"home": testutil.Address()},
	}
	created, err := store.Create(ctx, robert.ID, params)
	if err != nil {
		t.Fatalf("create contact: %v", err)
	}

	fetched, err := store.Get(ctx, created.ID, robert.ID)
	if err != nil {
		t.Fatalf("get contact: %v", err)
	}
	if !maps.Equal(fetched.PhoneNumbers, params.PhoneNumbers) {
		t.Errorf("phone numbers mutated in round trip: %v", fetched.PhoneNumbers)
	}
	if !maps.Equal(fetched.Emails, params.Emails) {
		t.Errorf("emails mutated in round trip: %v", fetched.Emails)
	}
	if !maps.Equal(fetched.Addresses, params.Addresses) {
		t.Errorf("addresses mutated in round trip: %v", fetched.Addresses)
	}
	if !fetched.Equal(created) {
		t.Errorf("fetched contact differs from created:\n%+v\n%+v", fetched, created)
	}
}

func TestGetByOtherUserFailsOwnership(t *testing.T) {
	ctx := context.Background()
	users, store := newStores(t)
	robert := registerUser(t, users, "uid-robert", "robert")
	joe := registerUser(t, users, "uid-joe", "joe")

	c, err := store.Create(ctx, robert.ID, testutil.ContactParams("Mom"))
	if err != nil {
		t.Fatalf("create contact: %v", err)
	}

	// Ownership violation, never not-found, even though the contact is
	// inaccessible from joe's perspective.
	_, err = store.Get(ctx, c.ID, joe.ID)
	if !errors.Is(err, contact.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestGetMissingContactFails(t *testing.T) {
	ctx := context.Background()
	users, store := newStores(t)
	robert := registerUser(t, users, "uid-robert", "robert")

	_, err := store.Get(ctx, "11111111-2222-3333-4444-555555555555", robert.ID)
	if !errors.Is(err, contact.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetByIDSkipsOwnershipCheck(t *testing.T) {
	ctx := context.Background()
	users, store := newStores(t)
	robert := registerUser(t, users, "uid-robert", "robert")

	c, err := store.Create(ctx, robert.ID, testutil.ContactParams("Mom"))
	if err != nil {
		t.Fatalf("create contact: %v", err)
	}

	got, err := store.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if !got.Equal(c) {
		t.Errorf("expected same contact, got %+v", got)
	}
}

func TestDeleteByOtherUserLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	users, store := newStores(t)
	robert := registerUser(t, users, "uid-robert", "robert")
	joe := registerUser(t, users, "uid-joe", "joe")

	c, err := store.Create(ctx, robert.ID, testutil.ContactParams("Mom"))
	if err != nil {
		t.Fatalf("create contact: %v", err)
	}

	if err := store.Delete(ctx, c.ID, joe.ID); !errors.Is(err, contact.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if _, err := store.Get(ctx, c.ID, robert.ID); err != nil {
		t.Fatalf("contact should still exist after failed delete: %v", err)
	}

	if err := store.Delete(ctx, "11111111-2222-3333-4444-555555555555", robert.ID); !errors.Is(err, contact.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRemovesContact(t *testing.T) {
	ctx := context.Background()
	users, store := newStores(t)
	robert := registerUser(t, users, "uid-robert", "robert")

	c, err := store.Create(ctx, robert.ID, testutil.ContactParams("Mom"))
	if err != nil {
		t.Fatalf("create contact: %v", err)
	}
	if err := store.Delete(ctx, c.ID, robert.ID); err != nil {
		t.Fatalf("delete contact: %v", err)
	}
	if _, err := store.Get(ctx, c.ID, robert.ID); !errors.Is(err, contact.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestListReturnsOwnContactsOrderedByName(t *testing.T) {
	ctx := context.Background()
	users, store := newStores(t)
	robert := registerUser(t, users, "uid-robert", "robert")
	joe := registerUser(t, users, "uid-joe", "joe")

	for _, name := range []string{"Zoe", "Alice", "Mom"} {
		if _, err := store.Create(ctx, robert.ID, testutil.ContactParams(name)); err != nil {
			t.Fatalf("create contact %s: %v", name, err)
		}
	}
	if _, err := store.Create(ctx, joe.ID, testutil.ContactParams("Brad")); err != nil {
		t.Fatalf("create joe's contact: %v", err)
	}

	list, err := store.List(ctx, robert.ID)
	if err != nil {
		t.Fatalf("list contacts: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 contacts, got %d", len(list))
	}
	for i, want := range []string{"Alice", "Mom", "Zoe"} {
		if list[i].Name != want {
			t.Errorf("position %d: expected %s, got %s", i, want, list[i].Name)
		}
	}

	if _, err := store.List(ctx, "uid-ghost"); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected user.ErrNotFound for unknown caller, got %v", err)
	}
}

func TestUpdateMergesAndKeepsOwner(t *testing.T) {
	ctx := context.Background()
	users, store := newStores(t)
	robert := registerUser(t, users, "uid-robert", "robert")
	joe := registerUser(t, users, "uid-joe", "joe")

	c, err := store.Create(ctx, robert.ID, testutil.ContactParams("Mom"))
	if err != nil {
		t.Fatalf("create contact: %v", err)
	}

	updated, err := store.Update(ctx, c.ID, robert.ID, contact.UpdateParams{
		PhoneNumbers: map[string]string{"mobile": "+15550001111"},
	})
	if err != nil {
		t.Fatalf("update contact: %v", err)
	}
	if updated.Name != "Mom" {
		t.Errorf("name should be untouched, got %q", updated.Name)
	}
	if len(updated.PhoneNumbers) != 1 || updated.PhoneNumbers["mobile"] != "+15550001111" {
		t.Errorf("expected whole-field replacement, got %v", updated.PhoneNumbers)
	}
	if updated.OwnerID != robert.ID {
		t.Errorf("owner must never change on update, got %s", updated.OwnerID)
	}

	// Ownership is enforced before any merge happens.
	_, err = store.Update(ctx, c.ID, joe.ID, contact.UpdateParams{Name: "Hijacked"})
	if !errors.Is(err, contact.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	got, err := store.Get(ctx, c.ID, robert.ID)
	if err != nil {
		t.Fatalf("get after failed update: %v", err)
	}
	if got.Name != "Mom" {
		t.Errorf("failed update must not change state, got name %q", got.Name)
	}
}

func TestUpdateAfterDeleteFailsNotFound(t *testing.T) {
	ctx := context.Background()
	users, store := newStores(t)
	robert := registerUser(t, users, "uid-robert", "robert")

	c, err := store.Create(ctx, robert.ID, testutil.ContactParams("Mom"))
	if err != nil {
		t.Fatalf("create contact: %v", err)
	}
	if err := store.Delete(ctx, c.ID, robert.ID); err != nil {
		t.Fatalf("delete contact: %v", err)
	}

	// An update of a deleted contact must not resurrect the row.
	_, err = store.Update(ctx, c.ID, robert.ID, contact.UpdateParams{Name: "Ghost"})
	if !errors.Is(err, contact.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.GetByID(ctx, c.ID); !errors.Is(err, contact.ErrNotFound) {
		t.Fatalf("deleted contact must stay deleted, got %v", err)
	}
}
