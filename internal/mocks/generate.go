// Package mocks provides generated test doubles for the port interfaces.
//
// Mocks are generated with go.uber.org/mock (gomock). To regenerate after an
// interface change, run:
//
//	go generate ./internal/mocks
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=member_store_mock.go github.com/rankedhq/ranked-api/internal/ports MemberStore
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=membership_store_mock.go github.com/rankedhq/ranked-api/internal/ports MembershipStore
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=organisation_store_mock.go github.com/rankedhq/ranked-api/internal/ports OrganisationStore
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=preference_store_mock.go github.com/rankedhq/ranked-api/internal/ports PreferenceStore
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=address_store_mock.go github.com/rankedhq/ranked-api/internal/ports AddressStore
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=identity_provider_mock.go github.com/rankedhq/ranked-api/internal/ports IdentityProvider
