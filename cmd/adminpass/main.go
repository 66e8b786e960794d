// Command adminpass prints the bcrypt hash to set as ADMIN_PASSWORD_HASH.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/light-bringer/perfume-catalog/internal/app/auth"
)

func main() {
	fmt.Fprint(os.Stderr, "Admin password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		log.Fatalf("Failed to read password: %v", err)
	}

	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		log.Fatal("Password must not be empty")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	fmt.Println(hash)
}
