package glasscube

import (
	"github.com/glasscube/glasscube/api"
	"github.com/glasscube/glasscube/content"
	"github.com/glasscube/glasscube/views"
)

// techStack is shown on the landing page; keys are localized as stack.<key>.
var techStack = []views.StackGroup{
	{Key: "backend", Items: []string{"Bun.js", "Node.js", "TypeScript", "Go", "Java"}},
	{Key: "frameworks", Items: []string{"Express", "Fastify", "Go Fiber", "Spring Boot", "Actix"}},
	{Key: "frontend", Items: []string{"Next.js", "React", "Vite"}},
	{Key: "databases", Items: []string{"MongoDB", "PostgreSQL", "Memcached"}},
	{Key: "protocols", Items: []string{"gRPC", "WebSocket", "REST API"}},
}

// fallbackLatest fills the landing page when the content API is down.
// Entries have no slug, so they render as plain titles.
var fallbackLatest = api.Latest{
	Blogs: []content.Blog{
		{Title: "Building High-Performance APIs with Bun.js"},
		{Title: "TypeScript Best Practices for Backend Development"},
		{Title: "Microservices Architecture with gRPC"},
	},
	Projects: []content.Project{
		{Title: "Real-time Chat Application with Socket.io"},
		{Title: "E-commerce API with Fastify and MongoDB"},
		{Title: "Task Management System with Next.js and PostgreSQL"},
	},
}
