package problemgen

// bankEntry is a statically authored question. Points and time limits are
// derived from Difficulty when the entry is issued.
type bankEntry struct {
	Field       Field
	Difficulty  int
	Text        string
	Kind        AnswerKind
	Choices     []string
	Answer      string
	Explanation string
}

// questionBank holds at least one entry for every field and tier. The first
// entry for a (field, tier) pair doubles as its fallback question.
var questionBank = []bankEntry{
	// Math
	{FieldMath, 1, "What is 7 + 5?", KindNumeric, nil, "12", "7 + 5 = 12."},
	{FieldMath, 1, "Which of these numbers is even?", KindMultipleChoice, []string{"3", "7", "8", "11"}, "8", "8 is divisible by 2."},
	{FieldMath, 2, "What is the square root of 144?", KindNumeric, nil, "12", "12 × 12 = 144."},
	{FieldMath, 2, "What is 15% of 200?", KindNumeric, nil, "30", "0.15 × 200 = 30."},
	{FieldMath, 3, "If f(x) = 2x² + 3x + 1, what is f(2)?", KindNumeric, nil, "15", "2·4 + 3·2 + 1 = 15."},
	{FieldMath, 3, "What is the next prime number after 23?", KindNumeric, nil, "29", "24 to 28 are all composite; 29 is prime."},
	{FieldMath, 4, "What is the sum of the interior angles of a hexagon, in degrees?", KindNumeric, nil, "720", "(6 - 2) × 180 = 720."},
	{FieldMath, 4, "In how many different orders can 5 books be arranged on a shelf?", KindNumeric, nil, "120", "5! = 120."},
	{FieldMath, 5, "What is the sum of the first 100 positive integers?", KindNumeric, nil, "5050", "n(n + 1) / 2 = 100 · 101 / 2 = 5050."},
	{FieldMath, 5, "How many ways can you choose 3 people from a group of 10?", KindNumeric, nil, "120", "C(10, 3) = 10 · 9 · 8 / 6 = 120."},

	// Logic
	{FieldLogic, 1, "What comes next in the sequence: 2, 4, 8, 16, ___?", KindNumeric, nil, "32", "Each term doubles the previous one."},
	{FieldLogic, 1, "All cats are animals. Fluffy is a cat. Therefore, Fluffy is ___?", KindFreeText, nil, "an animal", "Every member of a subset belongs to the superset."},
	{FieldLogic, 2, "What is the missing number: 1, 1, 2, 3, 5, 8, ___?", KindNumeric, nil, "13", "Each term is the sum of the two before it: 5 + 8 = 13."},
	{FieldLogic, 2, "In a group of 100 people, 60 like coffee, 40 like tea, and 20 like both. How many like neither?", KindNumeric, nil, "20", "60 + 40 - 20 = 80 like at least one, so 100 - 80 = 20 like neither."},
	{FieldLogic, 3, "If A > B and B > C, which statement must be true?", KindMultipleChoice, []string{"A > C", "C > A", "A = C", "B > A"}, "A > C", "The greater-than relation is transitive."},
	{FieldLogic, 3, "Some roses are flowers and all flowers are plants. Are some roses plants?", KindMultipleChoice, []string{"Yes", "No", "Cannot be determined"}, "Yes", "The roses that are flowers are also plants."},
	{FieldLogic, 4, "A bat and a ball cost $1.10 in total. The bat costs $1.00 more than the ball. How many cents does the ball cost?", KindNumeric, nil, "5", "Ball = x, bat = x + 100; 2x + 100 = 110 so x = 5."},
	{FieldLogic, 4, "What comes next: 2, 6, 12, 20, 30, ___?", KindNumeric, nil, "42", "The terms are n(n + 1): 6 · 7 = 42."},
	{FieldLogic, 5, "If 5 machines take 5 minutes to make 5 widgets, how many minutes do 100 machines take to make 100 widgets?", KindNumeric, nil, "5", "Each machine makes one widget in 5 minutes."},
	{FieldLogic, 5, "Three boxes are labeled Apples, Oranges and Mixed, and every label is wrong. Which box should you draw a single fruit from to relabel all of them?", KindMultipleChoice, []string{"Apples", "Oranges", "Mixed"}, "Mixed", "The box labeled Mixed holds only one kind, which identifies it and then the other two."},

	// Programming
	{FieldProgramming, 1, "What does HTML stand for?", KindFreeText, nil, "hypertext markup language", "HTML is the HyperText Markup Language."},
	{FieldProgramming, 1, "Which of these is a loop keyword in most languages?", KindMultipleChoice, []string{"for", "def", "class", "import"}, "for", "for starts a loop."},
	{FieldProgramming, 2, "Which data structure works on a last-in, first-out basis?", KindMultipleChoice, []string{"Stack", "Queue", "Heap", "Tree"}, "Stack", "A stack pops the most recently pushed item first."},
	{FieldProgramming, 2, "What is the index of the first element of an array in most programming languages?", KindNumeric, nil, "0", "Most languages use zero-based indexing."},
	{FieldProgramming, 3, "What is the time complexity of binary search on a sorted array?", KindMultipleChoice, []string{"O(1)", "O(log n)", "O(n)", "O(n log n)"}, "O(log n)", "Each step halves the search range."},
	{FieldProgramming, 3, "What is the binary number 1011 in decimal?", KindNumeric, nil, "11", "8 + 0 + 2 + 1 = 11."},
	{FieldProgramming, 4, "How many edges does a complete graph with 6 vertices have?", KindNumeric, nil, "15", "n(n - 1) / 2 = 6 · 5 / 2 = 15."},
	{FieldProgramming, 4, "Which sorting algorithm sorts in place with a worst case of O(n log n)?", KindMultipleChoice, []string{"Heap sort", "Quick sort", "Merge sort", "Bubble sort"}, "Heap sort", "Quick sort degrades to O(n²) and merge sort needs extra memory."},
	{FieldProgramming, 5, "What is the maximum number of nodes in a binary tree of height 4, where a lone root has height 0?", KindNumeric, nil, "31", "2^(h + 1) - 1 = 2^5 - 1 = 31."},
	{FieldProgramming, 5, "Which of these problems is undecidable?", KindMultipleChoice, []string{"The halting problem", "Sorting a list", "Shortest path in a graph", "Primality testing"}, "The halting problem", "Turing proved no algorithm decides halting for every program."},

	// Language
	{FieldLanguage, 1, "What is the opposite of 'hot'?", KindFreeText, nil, "cold", "Cold is the antonym of hot."},
	{FieldLanguage, 1, "Which word is a noun?", KindMultipleChoice, []string{"run", "happy", "table", "quickly"}, "table", "A table is a thing; the others are a verb, an adjective and an adverb."},
	{FieldLanguage, 2, "Which word is a synonym for 'happy'?", KindMultipleChoice, []string{"joyful", "angry", "tired", "sad"}, "joyful", "Joyful and happy share a meaning."},
	{FieldLanguage, 2, "What is the plural of 'mouse'?", KindFreeText, nil, "mice", "Mouse has an irregular plural."},
	{FieldLanguage, 3, "Book is to reading as fork is to ___?", KindFreeText, nil, "eating", "Each object is the tool for the activity."},
	{FieldLanguage, 3, "Which word is spelled correctly?", KindMultipleChoice, []string{"necessary", "neccessary", "necesary", "neccesary"}, "necessary", "One c, two s."},
	{FieldLanguage, 4, "Which literary device is used in 'The wind whispered through the trees'?", KindMultipleChoice, []string{"Personification", "Simile", "Alliteration", "Hyperbole"}, "Personification", "The wind is given a human action."},
	{FieldLanguage, 4, "What is a word that reads the same backward and forward called?", KindFreeText, nil, "palindrome", "Words such as level and radar are palindromes."},
	{FieldLanguage, 5, "Which word means 'to make less severe'?", KindMultipleChoice, []string{"Mitigate", "Exacerbate", "Obfuscate", "Aggrandize"}, "Mitigate", "Exacerbate means the opposite."},
	{FieldLanguage, 5, "What is a word formed from initial letters and pronounced as a word, such as NASA, called?", KindFreeText, nil, "acronym", "Initialisms are spelled out letter by letter; acronyms are spoken as words."},

	// Visual patterns
	{FieldVisualPatterns, 1, "How many sides does a triangle have?", KindNumeric, nil, "3", "Tri means three."},
	{FieldVisualPatterns, 1, "Which shape comes next: circle, square, circle, square, ___?", KindMultipleChoice, []string{"circle", "square", "triangle", "star"}, "circle", "The two shapes alternate."},
	{FieldVisualPatterns, 2, "In the pattern ▲ ▲ ■ ▲ ▲ ■ ▲ ▲ ___, which shape comes next?", KindMultipleChoice, []string{"▲", "■", "●"}, "■", "The block ▲ ▲ ■ repeats."},
	{FieldVisualPatterns, 2, "How many squares of any size are in a 2x2 grid?", KindNumeric, nil, "5", "Four small squares plus the whole grid."},
	{FieldVisualPatterns, 3, "A shape is rotated 90 degrees clockwise four times. How many degrees has it turned in total?", KindNumeric, nil, "360", "4 × 90 = 360, a full turn."},
	{FieldVisualPatterns, 3, "How many triangles appear when both diagonals of a square are drawn?", KindNumeric, nil, "8", "Four small triangles at the centre plus four formed by each diagonal halving the square."},
	{FieldVisualPatterns, 4, "How many edges does a cube have?", KindNumeric, nil, "12", "Four on top, four on the bottom and four vertical."},
	{FieldVisualPatterns, 4, "Which capital letter looks the same in a vertical mirror?", KindMultipleChoice, []string{"A", "B", "C", "F"}, "A", "A is symmetric about its vertical axis."},
	{FieldVisualPatterns, 5, "How many squares of any size are on a standard 8x8 chessboard?", KindNumeric, nil, "204", "1² + 2² + ... + 8² = 204."},
	{FieldVisualPatterns, 5, "A cube painted on every face is cut into 27 equal smaller cubes. How many small cubes have exactly two painted faces?", KindNumeric, nil, "12", "One on each of the cube's 12 edges."},
}
