package db

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
)

var Conn *pgxpool.Pool

// Init connects to Postgres
func Init() {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
	)

	var err error
	Conn, err = pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}

	if err = Conn.Ping(context.Background()); err != nil {
		log.Fatalf("Unable to ping database: %v\n", err)
	}

	log.Println("Connected to Postgres successfully")

	// Ensure schema pieces used by the handlers exist (all idempotent)
	ensureUsersTable()
	ensureServicesTable()
	ensureBookingsTable()
	ensurePaymentsTable()
	ensureNotificationsTable()
}

// ensureUsersTable creates the users table if missing
func ensureUsersTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS users (
            id UUID PRIMARY KEY,
            email TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL,
            first_name TEXT NOT NULL,
            last_name TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'homeowner' CHECK (role IN ('homeowner','service_provider','admin')),
            phone TEXT,
            address TEXT,
            is_active BOOLEAN DEFAULT TRUE,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE UNIQUE INDEX IF NOT EXISTS idx_users_phone ON users(phone) WHERE phone IS NOT NULL AND phone <> '';
    `)
	if err != nil {
		log.Printf("failed to create users table: %v", err)
		return
	}

	// Backfill any NULLs left by older schemas
	_, _ = Conn.Exec(ctx, `UPDATE users SET is_active = TRUE WHERE is_active IS NULL`)
}

// ensureServicesTable creates the services table if missing
func ensureServicesTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS services (
            id UUID PRIMARY KEY,
            provider_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            name TEXT NOT NULL,
            description TEXT NOT NULL,
            category TEXT NOT NULL CHECK (category IN (
                'plumbing','electrical','cleaning','carpentry','painting',
                'pest_control','appliance_repair','gardening'
            )),
            base_price DOUBLE PRECISION NOT NULL CHECK (base_price >= 0),
            emergency BOOLEAN DEFAULT FALSE,
            availability_days TEXT[] DEFAULT '{}',
            available_from TEXT NOT NULL DEFAULT '09:00',
            available_to TEXT NOT NULL DEFAULT '17:00',
            rating DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (rating >= 0 AND rating <= 5),
            images TEXT[] DEFAULT '{}',
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_services_provider ON services(provider_id);
        CREATE INDEX IF NOT EXISTS idx_services_category ON services(category);
    `)
	if err != nil {
		log.Printf("failed to create services table: %v", err)
	}
}

// ensureBookingsTable creates the bookings table and keeps its status
// constraints in sync with the lifecycle handlers
func ensureBookingsTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS bookings (
            id UUID PRIMARY KEY,
            service_id UUID NOT NULL REFERENCES services(id) ON DELETE CASCADE,
            customer_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            provider_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            date TIMESTAMP WITH TIME ZONE NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            address TEXT NOT NULL,
            description TEXT NOT NULL,
            price DOUBLE PRECISION NOT NULL,
            payment_status TEXT NOT NULL DEFAULT 'pending',
            emergency BOOLEAN DEFAULT FALSE,
            rating INTEGER NULL CHECK (rating >= 1 AND rating <= 5),
            review TEXT NULL,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_bookings_service ON bookings(service_id);
        CREATE INDEX IF NOT EXISTS idx_bookings_customer ON bookings(customer_id);
        CREATE INDEX IF NOT EXISTS idx_bookings_provider ON bookings(provider_id);
    `)
	if err != nil {
		log.Printf("failed to create bookings table: %v", err)
		return
	}

	// Re-assert the status constraints so rows from older schemas never
	// block the lifecycle handlers
	_, _ = Conn.Exec(ctx, `ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_status_check`)
	if _, err := Conn.Exec(ctx, `
        ALTER TABLE bookings
        ADD CONSTRAINT bookings_status_check
        CHECK (status IN ('pending','confirmed','in_progress','completed','cancelled'))`); err != nil {
		log.Printf("failed to update bookings status constraint: %v", err)
	}

	_, _ = Conn.Exec(ctx, `ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_payment_status_check`)
	if _, err := Conn.Exec(ctx, `
        ALTER TABLE bookings
        ADD CONSTRAINT bookings_payment_status_check
        CHECK (payment_status IN ('pending','paid','refunded'))`); err != nil {
		log.Printf("failed to update bookings payment status constraint: %v", err)
	}
}

// ensurePaymentsTable creates the payments table if not present
func ensurePaymentsTable() {
	ctx := context.Background()
	var exists bool
	_ = Conn.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM information_schema.tables
            WHERE table_schema = 'public' AND table_name = 'payments'
        )`).Scan(&exists)
	if exists {
		return
	}
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS payments (
            id UUID PRIMARY KEY,
            user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            booking_id UUID NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
            amount BIGINT NOT NULL,
            currency TEXT NOT NULL DEFAULT 'usd',
            status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','completed','failed','refunded')),
            payment_intent_id TEXT NOT NULL UNIQUE,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_payments_user ON payments(user_id);
        CREATE INDEX IF NOT EXISTS idx_payments_booking ON payments(booking_id);
    `)
	if err != nil {
		log.Printf("failed to create payments table: %v", err)
	}
}

// ensureNotificationsTable creates notifications table if it doesn't exist
func ensureNotificationsTable() {
	ctx := context.Background()
	var exists bool
	_ = Conn.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM information_schema.tables
            WHERE table_schema = 'public' AND table_name = 'notifications'
        )`).Scan(&exists)
	if exists {
		return
	}
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS notifications (
            id UUID PRIMARY KEY,
            user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            type TEXT NOT NULL,
            message TEXT NOT NULL,
            read BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_notifications_user_created ON notifications(user_id, created_at);
        CREATE INDEX IF NOT EXISTS idx_notifications_user_unread ON notifications(user_id) WHERE read = FALSE;
    `)
	if err != nil {
		log.Printf("failed to create notifications table: %v", err)
	}
}
