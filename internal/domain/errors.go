package domain

import "errors"

// ErrInvalidFilter indica um valor de filtro que não pôde ser interpretado
var ErrInvalidFilter = errors.New("filtro inválido")
