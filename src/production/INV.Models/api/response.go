package api

// Response is the envelope returned by every endpoint
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// OK builds a success envelope
func OK(message string, data any) *Response {
	return &Response{Success: true, Message: message, Data: data}
}

// Fail builds a failure envelope
func Fail(message string) *Response {
	return &Response{Success: false, Message: message, Data: nil}
}

// RowsAffected is the data payload for update and delete acknowledgements
type RowsAffected struct {
	Rows int64 `json:"rows_affected"`
}

// Deleted is the data payload for history clear acknowledgements
type Deleted struct {
	Deleted int64 `json:"deleted"`
}

// WeightUpdateRequest is the body of PUT /devices/{id}/weight.
// Pointer fields so a reading of zero passes required validation;
// only an absent field is rejected.
type WeightUpdateRequest struct {
	NewWeight *float64 `json:"new_weight" binding:"required"`
}

// WeightUpdateResult reports the before and after weight values
type WeightUpdateResult struct {
	DeviceId    uint    `json:"DeviceId"`
	LastReading float64 `json:"LastReading"`
	Weight      float64 `json:"Weight"`
}

// BatteryUpdateRequest is the body of PUT /devices/{id}/battery
type BatteryUpdateRequest struct {
	Battery *float64 `json:"Battery" binding:"required"`
}

// LocationUpdateRequest is the body of PUT /devices/{id}/location.
// Coordinates are pointers so (0, 0) is accepted.
type LocationUpdateRequest struct {
	Latitude     *float64 `json:"Latitude" binding:"required"`
	Longitude    *float64 `json:"Longitude" binding:"required"`
	LocationName *string  `json:"LocationName"`
}
