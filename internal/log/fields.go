package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldTripID      = "trip_id"
	FieldMemberID    = "member_id"
	FieldDestination = "destination"
	FieldVoteKind    = "vote_kind"
	FieldAmount      = "amount"
	FieldPaidBy      = "paid_by"
	FieldPlaceCount  = "place_count"
	FieldCacheKey    = "cache_key"
	FieldCacheHit    = "cache_hit"
	FieldRadiusKM    = "radius_km"
)

// Components defines standard component names
const (
	ComponentApp         = "app"
	ComponentHTTP        = "http"
	ComponentTrips       = "trips"
	ComponentSettlement  = "settlement"
	ComponentRecommender = "recommender"
	ComponentGeodata     = "geodata"
	ComponentStorage     = "storage"
	ComponentAMQP        = "amqp"
	ComponentWorker      = "worker"
	ComponentCache       = "cache"
)
