package world

// Course is one entry of the campus course catalog.
type Course struct {
	ID          string
	Name        string
	Department  string
	Description string
	Syllabus    []string
}

// CourseCatalog lists every course the campus teaches, grouped by department.
var CourseCatalog = []Course{
	{ID: "cs_web", Name: "Web Development 101", Department: "cs", Description: "HTML, CSS, JS basics",
		Syllabus: []string{"HTML Structure & Semantics", "CSS Box Model & Flexbox", "JavaScript Syntax Basics", "DOM Manipulation", "Event Handling", "Fetch API & JSON", "React Components"}},
	{ID: "cs_dsa", Name: "Data Structures & Algo", Department: "cs", Description: "Trees, Graphs, O-Notation",
		Syllabus: []string{"Big O Notation", "Arrays & Strings", "Linked Lists", "Stacks & Queues", "Recursion", "Sorting Algorithms", "Binary Trees"}},
	{ID: "cs_os", Name: "Operating Systems", Department: "cs", Description: "Processes, Threads, Memory",
		Syllabus: []string{"Process Management", "Threads & Concurrency", "CPU Scheduling", "Deadlocks", "Memory Management", "Virtual Memory", "File Systems"}},
	{ID: "cs_ai", Name: "Intro to AI", Department: "cs", Description: "Basics of ML and Neural Nets",
		Syllabus: []string{"Search Algorithms", "Knowledge Representation", "Probability & Uncertainty", "Machine Learning Basics", "Neural Networks", "Computer Vision", "Natural Language Processing"}},
	{ID: "math_calc1", Name: "Calculus I", Department: "math", Description: "Limits and Derivatives",
		Syllabus: []string{"Functions & Limits", "Continuity", "Derivatives Definition", "Rules of Differentiation", "Chain Rule", "Implicit Differentiation", "Applications of Derivatives"}},
	{ID: "math_stats", Name: "Statistics", Department: "math", Description: "Probability and Distributions",
		Syllabus: []string{"Data Types & Visualization", "Measures of Central Tendency", "Probability Basics", "Random Variables", "Normal Distribution", "Hypothesis Testing", "Regression"}},
	{ID: "math_la", Name: "Linear Algebra", Department: "math", Description: "Vectors and Matrices",
		Syllabus: []string{"Systems of Linear Equations", "Matrix Operations", "Determinants", "Vector Spaces", "Eigenvalues & Eigenvectors", "Linear Transformations", "Orthogonality"}},
	{ID: "art_hist", Name: "Art History", Department: "art", Description: "Renaissance to Modern",
		Syllabus: []string{"Prehistoric Art", "Classical Greek & Roman", "The Renaissance", "Baroque & Rococo", "Impressionism", "Cubism & Surrealism", "Contemporary Art"}},
	{ID: "art_color", Name: "Color Theory", Department: "art", Description: "Mixing and Palettes",
		Syllabus: []string{"The Color Wheel", "Hue, Saturation, Value", "Warm vs Cool Colors", "Complementary Colors", "Color Psychology", "Pigments & Mixing", "Digital Color"}},
	{ID: "art_sketch", Name: "Sketching Basics", Department: "art", Description: "Perspectives and Shading",
		Syllabus: []string{"Line & Contour", "Shape & Form", "Value & Shading", "One-Point Perspective", "Two-Point Perspective", "Human Proportions", "Gesture Drawing"}},
	{ID: "hist_world", Name: "World History", Department: "history", Description: "Ancient Civilizations",
		Syllabus: []string{"The Fertile Crescent", "Ancient Egypt", "Indus Valley Civilization", "Ancient China", "The Silk Road", "The Age of Discovery", "Industrial Revolution"}},
	{ID: "hist_eu", Name: "European History", Department: "history", Description: "Middle Ages to Cold War",
		Syllabus: []string{"The Fall of Rome", "Feudalism & Middle Ages", "The Renaissance", "The Reformation", "The Enlightenment", "French Revolution", "The World Wars"}},
	{ID: "hist_civ", Name: "Civics", Department: "history", Description: "Government and Politics",
		Syllabus: []string{"Foundations of Government", "The Constitution", "Legislative Branch", "Executive Branch", "Judicial Branch", "Civil Rights & Liberties", "International Relations"}},
}

// CourseByID finds a catalog entry by id.
func CourseByID(id string) *Course {
	for i := range CourseCatalog {
		if CourseCatalog[i].ID == id {
			return &CourseCatalog[i]
		}
	}
	return nil
}

// CourseByName finds a catalog entry by display name.
func CourseByName(name string) *Course {
	for i := range CourseCatalog {
		if CourseCatalog[i].Name == name {
			return &CourseCatalog[i]
		}
	}
	return nil
}

// CoursesByDepartment returns the ids of all courses in a department, in
// catalog order.
func CoursesByDepartment(dept string) []string {
	var ids []string
	for _, c := range CourseCatalog {
		if c.Department == dept {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
