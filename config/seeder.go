package config

import (
	"log"

	"github.com/Adnan2208/CampusCommerce/models"
	"github.com/Adnan2208/CampusCommerce/utils"
	"gorm.io/gorm"
)

func SeedUsers(db *gorm.DB) {
	log.Println("🌱 Seeding users...")

	password, _ := utils.HashPassword("password123")

	users := []models.User{
		{
			Name:     "Rahul Kumar",
			Email:    "rahul.kumar@kjei.edu.in",
			Password: password,
			Phone:    "9876543210",
			Location: "Boys Hostel",
			UpiID:    "rahulk@upi",
		},
		{
			Name:     "Priya Sharma",
			Email:    "priya.sharma@kjei.edu.in",
			Password: password,
			Phone:    "9876543211",
			Location: "Girls Hostel",
			UpiID:    "priyas@upi",
		},
	}

	for i := range users {
		users[i].Initials = models.DeriveInitials(users[i].Name)
		var existing models.User
		if err := db.Where("email = ?", users[i].Email).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := db.Create(&users[i]).Error; err != nil {
				log.Printf("Failed to seed user %s: %v", users[i].Email, err)
			} else {
				log.Printf("User seeded: %s (ID: %d)", users[i].Name, users[i].ID)
			}
		} else {
			log.Printf("User already exists: %s", users[i].Email)
		}
	}
}

func SeedProducts(db *gorm.DB) {
	log.Println("🌱 Seeding products...")

	var rahul, priya models.User
	if err := db.Where("email = ?", "rahul.kumar@kjei.edu.in").First(&rahul).Error; err != nil {
		log.Println("Seed users missing, skipping product seed")
		return
	}
	if err := db.Where("email = ?", "priya.sharma@kjei.edu.in").First(&priya).Error; err != nil {
		log.Println("Seed users missing, skipping product seed")
		return
	}

	products := []models.Product{
		{
			Title:         "Engineering Mathematics Textbook",
			Category:      "Books",
			Price:         299,
			OriginalPrice: 599,
			Condition:     "Like New",
			Description:   "Complete textbook for Engineering Mathematics. All chapters covered with solved examples.",
			Location:      "Campus Gate 2",
			Image:         "📘",
			UserID:        rahul.ID,
			SellerName:    rahul.Name,
			SellerEmail:   rahul.Email,
			Rating:        4.5,
		},
		{
			Title:         "HP Laptop i5 8th Gen",
			Category:      "Electronics",
			Price:         25000,
			OriginalPrice: 45000,
			Condition:     "Good",
			Description:   "Excellent condition HP laptop with i5 8th generation processor. Perfect for students. 8GB RAM, 256GB SSD, 15.6\" display.",
			Location:      "Boys Hostel",
			Image:         "💻",
			UserID:        priya.ID,
			SellerName:    priya.Name,
			SellerEmail:   priya.Email,
			Rating:        4.8,
		},
		{
			Title:         "Study Table with Chair",
			Category:      "Furniture",
			Price:         1500,
			OriginalPrice: 3000,
			Condition:     "Fair",
			Description:   "Sturdy wooden study table with comfortable chair. Perfect for hostel rooms.",
			Location:      "Girls Hostel",
			Image:         "🪑",
			UserID:        priya.ID,
			SellerName:    priya.Name,
			SellerEmail:   priya.Email,
			Rating:        4.2,
		},
	}

	for _, product := range products {
		var existing models.Product
		if err := db.Where("title = ? AND user_id = ?", product.Title, product.UserID).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := db.Create(&product).Error; err != nil {
				log.Printf("Failed to seed product %q: %v", product.Title, err)
			} else {
				log.Printf("Product seeded: %s", product.Title)
			}
		}
	}

	log.Println("✅ Seeding complete.")
}

// MakeAdmin promotes the account with the given email, creating a default
// admin account when none exists yet.
func MakeAdmin(db *gorm.DB, email string) error {
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		log.Printf("📝 User %q not found. Creating new admin user...", email)
		password, hashErr := utils.HashPassword("password")
		if hashErr != nil {
			return hashErr
		}
		user = models.User{
			Name:     "Admin",
			Email:    email,
			Password: password,
			Phone:    "0000000000",
			Location: "Admin Office",
			IsAdmin:  true,
			Initials: models.DeriveInitials("Admin"),
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		log.Printf("✅ Created new admin user: %s (%s)", user.Name, email)
		return nil
	}
	if err != nil {
		return err
	}

	if err := db.Model(&user).Update("is_admin", true).Error; err != nil {
		return err
	}
	log.Printf("✅ %s (%s) is now an admin", user.Name, email)
	return nil
}
