package store

// Storage keys. Each holds a JSON array of records, except KeyUser which
// holds the single session record (or is absent when signed out).
const (
	KeyUser          = "user"
	KeyConversations = "conversations"
	KeyMessages      = "messages"
	KeyOrders        = "orders"
	KeyBookings      = "bookings"
	KeyPortfolios    = "userPortfolios"
	KeyServices      = "userServices"
	KeyReviews       = "reviews"
	KeyNotifications = "notifications"
)
