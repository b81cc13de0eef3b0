package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// roomId, organizer, from, to (RFC 3339) и mine
func ToServiceRequest(userID string, query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{UserID: userID}

	if raw := query.Get("roomId"); raw != "" {
		roomID, err := handlers.ParseID(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid roomId: %w", err)
		}
		req.RoomID = &roomID
	}

	if organizer := query.Get("organizer"); organizer != "" {
		req.Organizer = &organizer
	}

	if raw := query.Get("from"); raw != "" {
		from, err := handlers.ParseTime(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid from: %w", err)
		}
		req.From = &from
	}

	if raw := query.Get("to"); raw != "" {
		to, err := handlers.ParseTime(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid to: %w", err)
		}
		req.To = &to
	}

	if raw := query.Get("mine"); raw != "" {
		mine, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid mine: %w", err)
		}
		req.Mine = mine
	}

	return req, nil
}
