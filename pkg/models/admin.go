package models

// Category groups topics; managed by admins, readable by everyone.
type Category struct {
	ID          int64  `json:"categoryId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Tag is a free-form topic label.
type Tag struct {
	ID   int64  `json:"tagId"`
	Name string `json:"name"`
}

// AdminUser is the user row shown in the admin user panel.
type AdminUser struct {
	ID       int64  `json:"userId"`
	Username string `json:"username"`
}

// AdminDashboard is the counters payload for the admin landing page.
type AdminDashboard struct {
	TotalUsers         int `json:"totalUsers"`
	LoggedInTodayUsers int `json:"loggedInTodayUsers"`
	TotalTopics        int `json:"totalTopics"`
	TopicsCreatedToday int `json:"topicsCreatedToday"`
	TotalComments      int `json:"totalComments"`
	CommentsToday      int `json:"commentsToday"`
}
