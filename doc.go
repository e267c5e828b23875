// Project Structure Overview
/*
storefront/
├── cmd/
│   └── server/
│       ├── main.go
│       └── catalog.go
├── internal/
│   ├── config/
│   │   ├── config.go
│   │   └── database.go
│   ├── catalog/
│   │   ├── price.go
│   │   ├── product.go
│   │   ├── criteria.go
│   │   └── query.go
│   ├── cart/
│   │   ├── cart.go
│   │   └── summary.go
│   ├── notify/
│   │   ├── clock.go
│   │   ├── context.go
│   │   ├── notification.go
│   │   └── queue.go
│   ├── cache/
│   │   ├── cache.go
│   │   ├── memory.go
│   │   └── redis.go
│   ├── models/
│   │   ├── product.go
│   │   └── common.go
│   ├── handlers/
│   │   ├── product.go
│   │   ├── session.go
│   │   ├── cart.go
│   │   └── notification.go
│   ├── services/
│   │   ├── catalog_service.go
│   │   ├── cart_service.go
│   │   ├── session_service.go
│   │   ├── storage_service.go
│   │   └── notification_service.go
│   ├── middleware/
│   │   ├── session.go
│   │   ├── cors.go
│   │   ├── rate_limit.go
│   │   ├── i18n.go
│   │   └── logging.go
│   ├── database/
│   │   ├── connection.go
│   │   ├── product_repository.go
│   │   ├── seed.go
│   │   └── seeds/
│   ├── i18n/
│   │   ├── i18n.go
│   │   ├── locales/
│   │   │   ├── en.json
│   │   │   └── pt_BR.json
│   │   └── keys.go
│   ├── utils/
│   │   ├── jwt.go
│   │   ├── validator.go
│   │   ├── crypto.go
│   │   ├── pagination.go
│   │   └── response.go
│   ├── router/
│   │   └── router.go
│   └── tests/
├── go.mod
└── go.sum
*/

// Package storefront documents the repository layout. The server entry
// point is cmd/server.
package storefront
