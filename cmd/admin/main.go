package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"drawspace/backend/internal/models"
	"drawspace/backend/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Small ops CLI: inspect rooms and trim drawing history without going
// through the HTTP surface.
func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "rooms":
		listRooms(db)
	case "delete-room":
		if len(os.Args) < 3 {
			usage()
		}
		deleteRoom(storageSvc, parseID(os.Args[2]))
	case "purge-events":
		if len(os.Args) < 4 {
			usage()
		}
		purgeEvents(storageSvc, parseID(os.Args[2]), os.Args[3])
	default:
		usage()
	}
}

func listRooms(db *gorm.DB) {
	var rooms []models.Room
	if err := db.Order("created_at desc").Find(&rooms).Error; err != nil {
		log.Fatalf("failed to list rooms: %v", err)
	}
	for _, room := range rooms {
		var events int64
		db.Model(&models.DrawEvent{}).Where("room_id = ?", room.ID).Count(&events)
		fmt.Printf("%d\t%s\tadmin=%s\tevents=%d\n", room.ID, room.Slug, room.AdminID, events)
	}
}

func deleteRoom(s *storage.Service, roomID int64) {
	room, err := s.GetRoomByID(roomID)
	if err != nil {
		log.Fatalf("room %d: %v", roomID, err)
	}
	if err := s.DeleteRoom(room.ID, room.AdminID); err != nil {
		log.Fatalf("failed to delete room %d: %v", roomID, err)
	}
	fmt.Printf("deleted room %d (%s)\n", room.ID, room.Slug)
}

func purgeEvents(s *storage.Service, roomID int64, olderThan string) {
	age, err := time.ParseDuration(olderThan)
	if err != nil {
		log.Fatalf("invalid duration %q: %v", olderThan, err)
	}
	cutoff := time.Now().Add(-age)
	deleted, err := s.DeleteEventsBefore(roomID, cutoff)
	if err != nil {
		log.Fatalf("failed to purge events for room %d: %v", roomID, err)
	}
	fmt.Printf("purged %d events from room %d older than %s\n", deleted, roomID, olderThan)
}

func parseID(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		log.Fatalf("invalid room id %q", arg)
	}
	return id
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  admin rooms
  admin delete-room <roomID>
  admin purge-events <roomID> <olderThan, e.g. 720h>`)
	os.Exit(2)
}
