package response

import (
	"time"

	"shareit/internal/usecase/queries"
)

type BookingItemResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BookingBookerResponse struct {
	ID string `json:"id"`
}

type BookingResponse struct {
	ID     string                `json:"id"`
	Item   BookingItemResponse   `json:"item"`
	Booker BookingBookerResponse `json:"booker"`
	Status string                `json:"status"`
	Start  time.Time             `json:"start"`
	End    time.Time             `json:"end"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	res := &BookingResponse{
		ID:     v.ID.String(),
		Booker: BookingBookerResponse{ID: v.Booker.ID.String()},
		Status: v.Status,
		Start:  v.Start,
		End:    v.End,
	}
	_ = copyView(&res.Item, &v.Item)
	return res
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	res := make([]*BookingResponse, len(views))
	for i, v := range views {
		res[i] = FromBookingView(v)
	}
	return res
}
