package learn

// questionBank is the offline question pool, keyed by department. Each
// department covers every tier so the fallback never comes back empty.
var questionBank = map[string][]Question{
	"cs": {
		{Prompt: "What does HTML stand for?", Options: []string{"Hyper Text Markup Language", "High Tech Modern Language", "Hyperlink Text Mode", "Home Tool Markup"}, Correct: 0, Tier: 1},
		{Prompt: "Which symbol is used for ID in CSS?", Options: []string{".", "#", "@", "!"}, Correct: 1, Tier: 1},
		{Prompt: "What is 2 + '2' in JavaScript?", Options: []string{"4", "22", "NaN", "Error"}, Correct: 1, Tier: 1},
		{Prompt: "What does CPU stand for?", Options: []string{"Central Processing Unit", "Computer Personal Unit", "Central Program Utility", "Core Power Unit"}, Correct: 0, Tier: 1},
		{Prompt: "Which of these is not a programming language?", Options: []string{"Python", "Ruby", "Cobra", "HTTP"}, Correct: 3, Tier: 1},
		{Prompt: "What is the Big O of Binary Search?", Options: []string{"O(n)", "O(n^2)", "O(log n)", "O(1)"}, Correct: 2, Tier: 2},
		{Prompt: "What data structure uses LIFO?", Options: []string{"Queue", "Array", "Stack", "Tree"}, Correct: 2, Tier: 2},
		{Prompt: "Which sort is stable?", Options: []string{"Quicksort", "Heapsort", "Merge sort", "Selection sort"}, Correct: 2, Tier: 2},
		{Prompt: "What does a deadlock require?", Options: []string{"Preemption", "Circular wait", "Shared-nothing design", "A single thread"}, Correct: 1, Tier: 3},
		{Prompt: "Which page replacement policy is optimal but unimplementable?", Options: []string{"FIFO", "LRU", "Belady's OPT", "Clock"}, Correct: 2, Tier: 3},
		{Prompt: "What does TCP provide that UDP does not?", Options: []string{"Checksums", "Ports", "Ordered delivery", "Broadcast"}, Correct: 2, Tier: 3},
	},
	"math": {
		{Prompt: "What is the derivative of x^2?", Options: []string{"x", "2x", "x^2", "2"}, Correct: 1, Tier: 1},
		{Prompt: "What is pi approx?", Options: []string{"3.14", "2.14", "4.14", "3.41"}, Correct: 0, Tier: 1},
		{Prompt: "Solve for x: 2x + 4 = 10", Options: []string{"2", "3", "4", "5"}, Correct: 1, Tier: 1},
		{Prompt: "What is 7 factorial divided by 6 factorial?", Options: []string{"6", "7", "42", "1"}, Correct: 1, Tier: 1},
		{Prompt: "Integral of 1/x?", Options: []string{"ln(x)", "e^x", "1/x^2", "x"}, Correct: 0, Tier: 2},
		{Prompt: "What is the limit of sin(x)/x as x approaches 0?", Options: []string{"0", "1", "Infinity", "Undefined"}, Correct: 1, Tier: 2},
		{Prompt: "A matrix with a zero determinant is?", Options: []string{"Orthogonal", "Singular", "Symmetric", "Diagonal"}, Correct: 1, Tier: 2},
		{Prompt: "Eigenvalues of a real symmetric matrix are always?", Options: []string{"Complex", "Real", "Positive", "Zero"}, Correct: 1, Tier: 3},
		{Prompt: "The standard normal distribution has variance?", Options: []string{"0", "0.5", "1", "2"}, Correct: 2, Tier: 3},
	},
	"art": {
		{Prompt: "Primary colors are?", Options: []string{"Red, Green, Blue", "Red, Yellow, Blue", "Orange, Green, Purple", "Cyan, Magenta, Yellow"}, Correct: 1, Tier: 1},
		{Prompt: "Who painted the Mona Lisa?", Options: []string{"Van Gogh", "Picasso", "Da Vinci", "Michelangelo"}, Correct: 2, Tier: 1},
		{Prompt: "Mixing red and yellow gives?", Options: []string{"Purple", "Orange", "Green", "Brown"}, Correct: 1, Tier: 1},
		{Prompt: "Complementary colors sit where on the color wheel?", Options: []string{"Adjacent", "Opposite", "Random", "Center"}, Correct: 1, Tier: 2},
		{Prompt: "Impressionism began in which country?", Options: []string{"Italy", "Spain", "France", "Netherlands"}, Correct: 2, Tier: 2},
		{Prompt: "Chiaroscuro is the interplay of?", Options: []string{"Line and form", "Light and shadow", "Warm and cool", "Figure and ground"}, Correct: 1, Tier: 3},
		{Prompt: "Cubism was pioneered by Picasso and?", Options: []string{"Dali", "Braque", "Matisse", "Duchamp"}, Correct: 1, Tier: 3},
	},
	"history": {
		{Prompt: "Who was the first US President?", Options: []string{"Lincoln", "Washington", "Jefferson", "Adams"}, Correct: 1, Tier: 1},
		{Prompt: "When did WWII end?", Options: []string{"1940", "1945", "1950", "1939"}, Correct: 1, Tier: 1},
		{Prompt: "The pyramids of Giza are in which country?", Options: []string{"Mexico", "Iraq", "Egypt", "Sudan"}, Correct: 2, Tier: 1},
		{Prompt: "The Silk Road connected China with?", Options: []string{"Australia", "The Mediterranean", "The Americas", "Japan"}, Correct: 1, Tier: 2},
		{Prompt: "The Renaissance began in which city?", Options: []string{"Paris", "London", "Florence", "Vienna"}, Correct: 2, Tier: 2},
		{Prompt: "The Treaty of Westphalia ended which conflict?", Options: []string{"The Hundred Years' War", "The Thirty Years' War", "The Napoleonic Wars", "WWI"}, Correct: 1, Tier: 3},
		{Prompt: "Which branch interprets laws under the US Constitution?", Options: []string{"Legislative", "Executive", "Judicial", "Federal Reserve"}, Correct: 2, Tier: 3},
	},
	"general": {
		{Prompt: "How many continents are there?", Options: []string{"5", "6", "7", "8"}, Correct: 2, Tier: 1},
		{Prompt: "What is H2O?", Options: []string{"Hydrogen", "Water", "Oxygen", "Salt"}, Correct: 1, Tier: 1},
		{Prompt: "Which planet is closest to the sun?", Options: []string{"Venus", "Earth", "Mercury", "Mars"}, Correct: 2, Tier: 1},
		{Prompt: "The speed of light is roughly?", Options: []string{"300 km/s", "3,000 km/s", "300,000 km/s", "3,000,000 km/s"}, Correct: 2, Tier: 2},
		{Prompt: "DNA is primarily stored in which part of the cell?", Options: []string{"Cytoplasm", "Nucleus", "Membrane", "Ribosome"}, Correct: 1, Tier: 2},
		{Prompt: "Entropy in a closed system tends to?", Options: []string{"Decrease", "Stay constant", "Increase", "Oscillate"}, Correct: 2, Tier: 3},
		{Prompt: "Which philosopher wrote the Republic?", Options: []string{"Aristotle", "Plato", "Socrates", "Kant"}, Correct: 1, Tier: 3},
	},
}
