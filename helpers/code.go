package helpers

import (
	"math/rand"
	"time"
)

const letterBytes = "abcdefghijklmnopqrstuvwxyz"

func randomLetters(n int) string {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, n)
	for i := range b {
		b[i] = letterBytes[src.Intn(len(letterBytes))]
	}
	return string(b)
}

func GenerateHostCode() string {
	return "h" + randomLetters(3)
}

func GenerateTableCode() string {
	return "t" + randomLetters(4)
}
