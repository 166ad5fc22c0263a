// Package content holds the static portfolio data shown by the terminal.
package content

// Project is one entry of the `projects` listing.
type Project struct {
	Title       string `toml:"title" json:"title"`
	Description string `toml:"description" json:"description"`
	Tech        string `toml:"tech" json:"tech"`
}

// SkillCategory groups skill names under a heading.
type SkillCategory struct {
	Category string   `toml:"category" json:"category"`
	List     []string `toml:"list" json:"list"`
}

// Link is one line of the `contact` output.
type Link struct {
	Icon  string `toml:"icon" json:"icon"`
	Label string `toml:"label" json:"label"`
	Text  string `toml:"text" json:"text"`
	URL   string `toml:"url" json:"url"`
	// External links open in a new tab on the web surface.
	External bool `toml:"external" json:"external"`
}

// Badge is the face of the ID card widget.
type Badge struct {
	Name         string `toml:"name" json:"name"`
	Role         string `toml:"role" json:"role"`
	Handle       string `toml:"handle" json:"handle"`
	Organization string `toml:"organization" json:"organization"`
}

// Portfolio is everything the command producers read from.
type Portfolio struct {
	About          []string        `toml:"about"`
	Contact        []Link          `toml:"contact"`
	Certifications []string        `toml:"certifications"`
	Projects       []Project       `toml:"projects"`
	Skills         []SkillCategory `toml:"skills"`
	Badge          Badge           `toml:"badge"`
}

// Default returns the built-in portfolio.
func Default() *Portfolio {
	return &Portfolio{
		About: []string{
			"Full Stack Developer with expertise in building scalable web and mobile applications.",
			"Passionate about creating innovative solutions using cutting-edge technologies, from AI-powered tools to cross-platform mobile apps.",
			"Committed to writing clean, maintainable code and delivering exceptional user experiences.",
		},
		Contact: []Link{
			{Icon: "📧", Label: "Email", Text: "puneet.goyal018@gmail.com", URL: "mailto:puneet.goyal018@gmail.com"},
			{Icon: "🔗", Label: "LinkedIn", Text: "linkedin.com/in/puneet-goyal-a056a6109", URL: "https://linkedin.com/in/puneet-goyal-a056a6109", External: true},
			{Icon: "🐙", Label: "GitHub", Text: "github.com/goyalpuneet18", URL: "https://github.com/goyalpuneet18", External: true},
		},
		Certifications: []string{
			"Microsoft Technology Associate: Database Administration Fundamentals (MTA)",
			"Google Cybersecurity Certificate",
			"Oracle AI Vector Search Certified Professional",
		},
		Projects: []Project{
			{
				Title:       "Coaching Companion Bot",
				Description: "Telegram bot using multi-agent architecture to provide personalized coaching and guidance.",
				Tech:        "Telegram API, Multi-Agent, Python, AI",
			},
			{
				Title:       "Financial PDF Reader",
				Description: "React application that reads financial PDFs, converts them to Excel, and provides AI-based analytics.",
				Tech:        "React, PDF.js, AI, Excel Export",
			},
			{
				Title:       "Secure QR Generator",
				Description: "QR code generator with built-in tokenization for enhanced security.",
				Tech:        "Node.js, QR Code, Security, JWT",
			},
			{
				Title:       "Zapier Integration App",
				Description: "Custom Zapier application enabling workflow automation and third-party integrations.",
				Tech:        "Zapier CLI, REST API, Webhooks",
			},
			{
				Title:       "Flutter Mobile App",
				Description: "Cross-platform mobile application for real-time data visualization and management.",
				Tech:        "Flutter, Dart, Firebase, Mobile",
			},
		},
		Skills: []SkillCategory{
			{Category: "Programming Languages", List: []string{"Java", "Python", "Dot-Net Core", "Node.js", "MongoDB", "MS SQL", "Kotlin", "JavaScript"}},
			{Category: "Frameworks", List: []string{"Angular 12+", "React", "Spring-boot 3", "Flutter", "Flask", "Kafka", "Moon.js"}},
			{Category: "Tools", List: []string{"Git-lab", "Pivotal Cloud Foundry", "Docker", "Selenium", "Kubernetes", "Figma"}},
			{Category: "AI/ML Models", List: []string{"Llama-3-1-8b-instruct", "Mistral-7b-instruct-v03"}},
		},
		Badge: Badge{
			Name:         "Puneet Goyal",
			Role:         "Full Stack Developer",
			Handle:       "@goyalpuneet18",
			Organization: "PORTFOLIO",
		},
	}
}
