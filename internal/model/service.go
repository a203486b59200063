package model

import "github.com/programari/backend/pkg/contract"

// Service is stored exactly as it travels on the wire.
type Service = contract.Service
