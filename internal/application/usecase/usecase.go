// Package usecase holds the service operations. Every mutating operation
// follows the same shape: resolve the acting identity (passed in explicitly,
// never read from ambient state), check the permission predicate, validate
// input, mutate the store, publish an activity event, return.
package usecase

import "github.com/Blawness/project-tanah-garapan-sub000/internal/domain"

// requireManageData admits MANAGER and above. A nil actor is anonymous and is
// rejected before the store is touched.
func requireManageData(actor *domain.Identity) error {
	if actor == nil || !actor.Role.CanManageData() {
		return domain.ErrUnauthorized
	}
	return nil
}

// requireViewLogs admits ADMIN and above; gates the activity log and the user
// administration operations.
func requireViewLogs(actor *domain.Identity) error {
	if actor == nil || !actor.Role.CanViewLogs() {
		return domain.ErrUnauthorized
	}
	return nil
}
