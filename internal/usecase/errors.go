package usecase

import (
	"errors"

	"github.com/user/bizscrape-service/internal/entity"
)

// storageErr wraps a repository failure as a PersistenceError. Domain sentinels
// returned by repositories pass through untouched.
func storageErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, entity.ErrJobNotFound),
		errors.Is(err, entity.ErrJobTerminal),
		errors.Is(err, entity.ErrIndustryNotFound):
		return err
	}
	return entity.Persistence(op, err)
}
