package services_test

import (
	"context"
	"testing"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/core/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CreateMember_DefaultsToActive(t *testing.T) {
	db := newTestDB(t)
	svc := newMembershipService(db)

	member, err := svc.CreateMember(context.Background(), &services.CreateMemberInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, models.MemberStatusActive, member.Status)
	assert.False(t, member.MembershipDate.IsZero())
}

func Test_CreateMember_When_EmailAlreadyRegistered(t *testing.T) {
	db := newTestDB(t)
	svc := newMembershipService(db)
	ctx := context.Background()

	_, err := svc.CreateMember(ctx, &services.CreateMemberInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	})
	require.NoError(t, err)

	_, err = svc.CreateMember(ctx, &services.CreateMemberInput{
		FirstName: "Augusta",
		LastName:  "King",
		Email:     "ada@example.com",
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func Test_CreateMember_RejectsInvalidInput(t *testing.T) {
	db := newTestDB(t)
	svc := newMembershipService(db)
	ctx := context.Background()

	tests := []struct {
		name  string
		input *services.CreateMemberInput
	}{
		{"missing first name", &services.CreateMemberInput{LastName: "Lovelace", Email: "ada@example.com"}},
		{"missing last name", &services.CreateMemberInput{FirstName: "Ada", Email: "ada@example.com"}},
		{"email without at sign", &services.CreateMemberInput{FirstName: "Ada", LastName: "Lovelace", Email: "ada.example.com"}},
		{"unknown status", &services.CreateMemberInput{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Status: "suspended"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateMember(ctx, tc.input)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func Test_CreateMember_KeepsRequestedStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newMembershipService(db)

	member, err := svc.CreateMember(context.Background(), &services.CreateMemberInput{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
		Status:    models.MemberStatusInactive,
	})

	require.NoError(t, err)
	assert.Equal(t, models.MemberStatusInactive, member.Status)
	assert.False(t, member.IsActive())
}

func Test_GetMember_When_Missing(t *testing.T) {
	db := newTestDB(t)
	svc := newMembershipService(db)

	_, err := svc.GetMember(context.Background(), 4242)

	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func Test_SearchMembers_MatchesNameAndEmail(t *testing.T) {
	// setup
	db := newTestDB(t)
	svc := newMembershipService(db)
	ctx := context.Background()

	givenMember(t, db, "Alice", "Smith", "alice@example.com", models.MemberStatusActive)
	givenMember(t, db, "Bob", "Stone", "bob@elsewhere.org", models.MemberStatusActive)
	givenMember(t, db, "Carol", "Jones", "carol@example.com", models.MemberStatusInactive)

	// act + assert
	byName, err := svc.SearchMembers(ctx, "Smith", 10)
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Alice", byName[0].FirstName)

	byEmail, err := svc.SearchMembers(ctx, "elsewhere", 10)
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "Bob", byEmail[0].FirstName)
}
