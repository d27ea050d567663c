// Command seed populates the database with a sample catalog, a member roster,
// and some circulation history.
// Usage: go run cmd/seed/main.go [-db path/to/libris.db]
package main

import (
	"flag"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/lunvik/libris/internal/database"
	"github.com/lunvik/libris/internal/entities"
)

const defaultDatabasePath = "./libris.db"

func main() {
	dbPath := flag.String("db", defaultDatabasePath, "path to the database file")
	flag.Parse()

	log.Printf("Seeding database at %s...", *dbPath)

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// Wipe circulation first so book/member deletes don't orphan records.
	for _, model := range []any{&entities.Borrowing{}, &entities.Book{}, &entities.Member{}} {
		if err := db.DB.Where("1 = 1").Delete(model).Error; err != nil {
			log.Fatalf("Failed to clear existing data: %v", err)
		}
	}

	bookList := sampleBooks()
	for i := range bookList {
		if err := db.DB.Create(&bookList[i]).Error; err != nil {
			log.Fatalf("Failed to seed book %q: %v", bookList[i].Title, err)
		}
	}
	log.Printf("Created %d books", len(bookList))

	memberList := sampleMembers()
	for i := range memberList {
		if err := db.DB.Create(&memberList[i]).Error; err != nil {
			log.Fatalf("Failed to seed member %q: %v", memberList[i].Name, err)
		}
	}
	log.Printf("Created %d members", len(memberList))

	borrowings := sampleBorrowings(bookList, memberList)
	for i := range borrowings {
		if err := db.DB.Create(&borrowings[i]).Error; err != nil {
			log.Fatalf("Failed to seed borrowing: %v", err)
		}
		// Active loans hold a copy, so their stock must come down too.
		if borrowings[i].Status == entities.StatusBorrowed {
			if err := db.DB.Model(&entities.Book{}).
				Where("id = ?", borrowings[i].BookID).
				UpdateColumn("stock", gorm.Expr("stock - 1")).Error; err != nil {
				log.Fatalf("Failed to adjust stock for seeded borrowing: %v", err)
			}
		}
	}
	log.Printf("Created %d borrowings", len(borrowings))

	log.Println("Seeding completed successfully!")
}

func sampleBooks() []entities.Book {
	return []entities.Book{
		{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", PublishedYear: 1925, Stock: 5, ISBN: "9780743273565"},
		{Title: "To Kill a Mockingbird", Author: "Harper Lee", PublishedYear: 1960, Stock: 3, ISBN: "9780446310789"},
		{Title: "1984", Author: "George Orwell", PublishedYear: 1949, Stock: 4, ISBN: "9780451524935"},
		{Title: "Pride and Prejudice", Author: "Jane Austen", PublishedYear: 1813, Stock: 6, ISBN: "9780141439518"},
		{Title: "The Catcher in the Rye", Author: "J.D. Salinger", PublishedYear: 1951, Stock: 3, ISBN: "9780316769488"},
		{Title: "The Hobbit", Author: "J.R.R. Tolkien", PublishedYear: 1937, Stock: 7, ISBN: "9780547928227"},
		{Title: "The Da Vinci Code", Author: "Dan Brown", PublishedYear: 2003, Stock: 4, ISBN: "9780307474278"},
		{Title: "The Alchemist", Author: "Paulo Coelho", PublishedYear: 1988, Stock: 5, ISBN: "9780062315007"},
		{Title: "The Little Prince", Author: "Antoine de Saint-Exupéry", PublishedYear: 1943, Stock: 8, ISBN: "9780156012195"},
		{Title: "Brave New World", Author: "Aldous Huxley", PublishedYear: 1932, Stock: 4, ISBN: "9780060850524"},
		{Title: "The Lord of the Rings", Author: "J.R.R. Tolkien", PublishedYear: 1954, Stock: 6, ISBN: "9780618640157"},
		{Title: "Harry Potter and the Sorcerer's Stone", Author: "J.K. Rowling", PublishedYear: 1997, Stock: 7, ISBN: "9780590353427"},
		{Title: "The Chronicles of Narnia", Author: "C.S. Lewis", PublishedYear: 1950, Stock: 5, ISBN: "9780066238501"},
		{Title: "One Hundred Years of Solitude", Author: "Gabriel García Márquez", PublishedYear: 1967, Stock: 3, ISBN: "9780060883287"},
		{Title: "The Hunger Games", Author: "Suzanne Collins", PublishedYear: 2008, Stock: 6, ISBN: "9780439023481"},
		{Title: "The Road", Author: "Cormac McCarthy", PublishedYear: 2006, Stock: 4, ISBN: "9780307387899"},
		{Title: "The Kite Runner", Author: "Khaled Hosseini", PublishedYear: 2003, Stock: 5, ISBN: "9781594631931"},
		{Title: "The Girl with the Dragon Tattoo", Author: "Stieg Larsson", PublishedYear: 2005, Stock: 4, ISBN: "9780307949486"},
		{Title: "The Book Thief", Author: "Markus Zusak", PublishedYear: 2005, Stock: 6, ISBN: "9780375842207"},
		{Title: "Life of Pi", Author: "Yann Martel", PublishedYear: 2001, Stock: 5, ISBN: "9780156027328"},
	}
}

func sampleMembers() []entities.Member {
	return []entities.Member{
		{Name: "John Doe", Email: "john.doe@email.com", Phone: "081234567890", Address: "123 Main St, City"},
		{Name: "Jane Smith", Email: "jane.smith@email.com", Phone: "081234567891", Address: "456 Oak Ave, Town"},
		{Name: "Robert Johnson", Email: "robert.j@email.com", Phone: "081234567892", Address: "789 Pine Rd, Village"},
		{Name: "Mary Williams", Email: "mary.w@email.com", Phone: "081234567893", Address: "321 Elm St, Borough"},
		{Name: "Michael Brown", Email: "michael.b@email.com", Phone: "081234567894", Address: "654 Maple Dr, District"},
		{Name: "Sarah Davis", Email: "sarah.d@email.com", Phone: "081234567895", Address: "987 Cedar Ln, County"},
		{Name: "James Wilson", Email: "james.w@email.com", Phone: "081234567896", Address: "147 Birch Ave, State"},
		{Name: "Emily Taylor", Email: "emily.t@email.com", Phone: "081234567897", Address: "258 Spruce St, Province"},
	}
}

func sampleBorrowings(bookList []entities.Book, memberList []entities.Member) []entities.Borrowing {
	date := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}
	ptr := func(t time.Time) *time.Time { return &t }

	return []entities.Borrowing{
		{BookID: bookList[0].ID, MemberID: memberList[0].ID, BorrowDate: date("2024-11-21"), ReturnDate: ptr(date("2024-11-28")), Status: entities.StatusReturned},
		{BookID: bookList[1].ID, MemberID: memberList[1].ID, BorrowDate: date("2024-11-22"), ReturnDate: ptr(date("2024-11-29")), Status: entities.StatusReturned},
		{BookID: bookList[2].ID, MemberID: memberList[2].ID, BorrowDate: date("2024-11-23"), Status: entities.StatusBorrowed},
		{BookID: bookList[5].ID, MemberID: memberList[3].ID, BorrowDate: date("2024-11-26"), ReturnDate: ptr(date("2024-12-03")), Status: entities.StatusReturned},
		{BookID: bookList[6].ID, MemberID: memberList[4].ID, BorrowDate: date("2024-11-27"), Status: entities.StatusBorrowed},
		{BookID: bookList[8].ID, MemberID: memberList[5].ID, BorrowDate: date("2024-11-29"), Status: entities.StatusBorrowed},
		{BookID: bookList[10].ID, MemberID: memberList[6].ID, BorrowDate: date("2024-12-01"), Status: entities.StatusBorrowed},
		{BookID: bookList[11].ID, MemberID: memberList[7].ID, BorrowDate: date("2024-12-02"), ReturnDate: ptr(date("2024-12-09")), Status: entities.StatusReturned},
	}
}
