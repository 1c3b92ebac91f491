package blog

var posts = []Post{
	{
		ID:              "what-is-product-design",
		Title:           "What is Product Design? A Beginner's Guide",
		MetaDescription: "Product design explained: the process, the roles, and the skills you need to get started.",
		Image:           "/images/blog/product-design.webp",
		ImageAlt:        "Designer sketching wireframes at a desk",
		Author:          "Suthersun",
		Date:            "August 12, 2024",
		Category:        "Design",
		ReadTime:        "6 min read",
	},
	{
		ID:              "ux-research-methods",
		Title:           "5 UX Research Methods Every Designer Should Know",
		MetaDescription: "From user interviews to usability testing, a practical tour of the research methods that matter.",
		Image:           "/images/blog/ux-research.webp",
		ImageAlt:        "Sticky notes grouped on a whiteboard",
		Author:          "Suthersun",
		Date:            "July 28, 2024",
		Category:        "Research",
		ReadTime:        "8 min read",
	},
	{
		ID:              "design-systems-101",
		Title:           "Design Systems 101: Why Consistency Wins",
		MetaDescription: "How design systems keep growing products coherent, and how to start building one.",
		Image:           "/images/blog/design-systems.webp",
		ImageAlt:        "Component library displayed on a laptop screen",
		Author:          "Suthersun",
		Date:            "July 10, 2024",
		Category:        "Design",
		ReadTime:        "5 min read",
	},
	{
		ID:              "portfolio-that-gets-hired",
		Title:           "Building a Design Portfolio That Gets You Hired",
		MetaDescription: "What hiring managers actually look for in a junior designer's portfolio.",
		Image:           "/images/blog/portfolio.webp",
		ImageAlt:        "Portfolio case study open in a browser",
		Author:          "Suthersun",
		Date:            "June 22, 2024",
		Category:        "Career",
		ReadTime:        "7 min read",
	},
}
