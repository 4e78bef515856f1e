package entities

type CommunityPost struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"user_id"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	Category      string `json:"category"`
	Language      string `json:"language"`
	LikesCount    int    `json:"likes_count"`
	CommentsCount int    `json:"comments_count"`
	CreatedAt     string `json:"created_at"`
}

type DraftPost struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// PostCategories are the categories offered by the new-post form.
var PostCategories = []string{
	"Crop Management",
	"Soil Health",
	"Pest Control",
	"Weather Discussion",
	"Market Prices",
	"Technology",
	"Success Stories",
	"Questions",
	"General Discussion",
}
