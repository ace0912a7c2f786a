package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"libraryhub/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func Test_Kind_MapsEveryDomainError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{domain.ErrValidation, domain.KindValidation},
		{domain.ErrDuplicateKey, domain.KindDuplicateKey},
		{domain.ErrDuplicateISBN, domain.KindDuplicateKey},
		{domain.ErrDuplicateCategory, domain.KindDuplicateKey},
		{domain.ErrDuplicateEmail, domain.KindDuplicateKey},
		{domain.ErrNotFound, domain.KindNotFound},
		{domain.ErrBookNotFound, domain.KindNotFound},
		{domain.ErrAuthorNotFound, domain.KindNotFound},
		{domain.ErrCategoryNotFound, domain.KindNotFound},
		{domain.ErrMemberNotFound, domain.KindNotFound},
		{domain.ErrBorrowingNotFound, domain.KindNotFound},
		{domain.ErrMemberInactive, domain.KindMemberInactive},
		{domain.ErrNoCopiesAvailable, domain.KindNoCopiesAvailable},
		{domain.ErrAlreadyReturned, domain.KindAlreadyReturned},
		{domain.ErrBusy, domain.KindBusy},
		{domain.ErrTimeout, domain.KindTimeout},
		{domain.ErrInternalInconsistency, domain.KindInternalInconsistency},
		{domain.ErrUnauthorized, domain.KindUnauthorized},
		{domain.ErrForbidden, domain.KindForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.want, domain.Kind(tc.err))
		})
	}
}

func Test_Kind_SeesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("%w: available_copies must not exceed total_copies", domain.ErrValidation)

	assert.Equal(t, domain.KindValidation, domain.Kind(wrapped))
}

func Test_Kind_FallsBackToInternal(t *testing.T) {
	assert.Equal(t, domain.KindInternal, domain.Kind(errors.New("driver exploded")))
}
