package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/homefix-app/homefix/internal/db"
)

func main() {
	email := flag.String("email", "", "Email of the user to promote to service provider")
	flag.Parse()

	if *email == "" {
		log.Fatalf("usage: go run cmd/adminutil/promote_provider/main.go -email user@example.com")
	}

	db.Init()

	ct, err := db.Conn.Exec(context.Background(),
		`UPDATE users SET role = 'service_provider' WHERE email = $1`, *email)
	if err != nil {
		log.Fatalf("failed to promote user to service provider: %v", err)
	}

	if ct.RowsAffected() == 0 {
		log.Fatalf("no user found with email: %s", *email)
	}

	fmt.Printf("User %s promoted to service provider.\n", *email)
}
