package site

// Topic is one tab of the documentation site.
type Topic struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Badge       string `json:"badge"`
}

// ContentID is the id of the content region that belongs to the topic.
func (t Topic) ContentID() string {
	return t.Key + "-content"
}

// DefaultTopics returns the tabs of the architecture documentation site.
func DefaultTopics() []Topic {
	return []Topic{
		{
			Key:         "database",
			Title:       "Database Architecture",
			Description: "Comprehensive guide to database design patterns, optimization strategies, and architectural best practices for scalable systems",
			Badge:       "Database",
		},
		{
			Key:         "crypto",
			Title:       "Cryptography & Security",
			Description: "Advanced cryptographic protocols, encryption algorithms, digital signatures, and security implementation patterns",
			Badge:       "Cryptography",
		},
		{
			Key:         "authentication",
			Title:       "Authentication Systems",
			Description: "Modern authentication mechanisms, identity management, OAuth protocols, and secure user verification systems",
			Badge:       "Auth",
		},
		{
			Key:         "transport",
			Title:       "Transport Layer Protocols",
			Description: "Network communication protocols, API design patterns, message queuing, and distributed system communication",
			Badge:       "Transport",
		},
		{
			Key:         "system",
			Title:       "System Architecture",
			Description: "Scalable system design, microservices architecture, load balancing, and infrastructure optimization strategies",
			Badge:       "System",
		},
	}
}
