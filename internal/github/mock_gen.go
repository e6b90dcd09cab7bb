// internal/github/mock_gen.go
package github

//go:generate mockgen -source=./client.go -destination=../mocks/mock_metadata_client.go -package=mocks MetadataClient
