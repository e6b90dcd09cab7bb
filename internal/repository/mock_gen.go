// internal/repository/mock_gen.go
package repository

//go:generate mockgen -source=./user.go -destination=../mocks/mock_user_repository.go -package=mocks UserRepositoryIface
//go:generate mockgen -source=./project.go -destination=../mocks/mock_project_repository.go -package=mocks ProjectRepositoryIface
//go:generate mockgen -source=./catalog.go -destination=../mocks/mock_catalog_repository.go -package=mocks CatalogRepositoryIface
//go:generate mockgen -source=./preference.go -destination=../mocks/mock_preference_repository.go -package=mocks PreferenceRepositoryIface
