package service

import (
	"context"
	"errors"
	"fmt"

	"blogapi/internal/repository"
	"blogapi/internal/validation"
)

// reference is a foreign key that must resolve to an existing row at write time.
type reference struct {
	field  string
	entity string
	id     *int64
	exists func(ctx context.Context, id int64) error
}

// checkReferences looks up every set reference and reports the missing ones as
// field errors. Lookup failures other than not-found abort the check.
func checkReferences(ctx context.Context, refs ...reference) error {
	var errs validation.Errors

	for _, ref := range refs {
		if ref.id == nil {
			continue
		}

		err := ref.exists(ctx, *ref.id)
		if errors.Is(err, repository.ErrNotFound) {
			errs = append(errs, validation.FieldError{Field: ref.field, Message: ref.entity + " does not exist"})
			continue
		}
		if err != nil {
			return fmt.Errorf("check %s: %w", ref.field, err)
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func userReference(repo repository.UserRepository, id *int64) reference {
	return reference{
		field:  "user_id",
		entity: "user",
		id:     id,
		exists: func(ctx context.Context, id int64) error {
			_, err := repo.GetByID(ctx, id)
			return err
		},
	}
}

func postReference(repo repository.PostRepository, id *int64) reference {
	return reference{
		field:  "post_id",
		entity: "post",
		id:     id,
		exists: func(ctx context.Context, id int64) error {
			_, err := repo.GetByID(ctx, id)
			return err
		},
	}
}

func categoryReference(repo repository.CategoryRepository, id *int64) reference {
	return reference{
		field:  "category_id",
		entity: "category",
		id:     id,
		exists: func(ctx context.Context, id int64) error {
			_, err := repo.GetByID(ctx, id)
			return err
		},
	}
}
