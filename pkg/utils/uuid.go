package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const tokenIDLength = 21

// GenerateTokenID gera o identificador (jti) dos tokens emitidos
func GenerateTokenID() (string, error) {
	return gonanoid.Generate(characters, tokenIDLength)
}
