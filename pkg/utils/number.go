package utils

// CeilDiv retorna o teto de total/size, zero quando size não é positivo
func CeilDiv(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}

	return (total + size - 1) / size
}
