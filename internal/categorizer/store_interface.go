package categorizer

import "fjacquet/budget-sync/internal/models"

// CategoryStoreInterface is the persistence the Categorizer needs for the
// user's category list.
type CategoryStoreInterface interface {
	LoadCategories() ([]models.Category, error)
	SaveCategories(categories []models.Category) error
}
