package app

import "busline.mx/erp/internal/db/postgres"

// SQL migrations are embedded in the binary. Money columns hold cents.
var migrations = []postgres.Migration{
	{Version: 1, SQL: migration001Staff},
	{Version: 2, SQL: migration002Auth},
	{Version: 3, SQL: migration003Ledger},
	{Version: 4, SQL: migration004Fleet},
	{Version: 5, SQL: migration005Purchasing},
	{Version: 6, SQL: migration006Logistics},
	{Version: 7, SQL: migration007Sales},
}

var migration001Staff = `
CREATE TABLE IF NOT EXISTS employees (
    id BIGSERIAL PRIMARY KEY,
    first_name VARCHAR(60) NOT NULL,
    last_name VARCHAR(60) NOT NULL,
    age INTEGER NOT NULL CHECK (age BETWEEN 18 AND 70),
    position VARCHAR(32) NOT NULL,
    department VARCHAR(32) NOT NULL,
    salary BIGINT NOT NULL CHECK (salary > 0),
    hired_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    active BOOLEAN NOT NULL DEFAULT TRUE,
    terminated_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_employees_department ON employees(department) WHERE active;

CREATE TABLE IF NOT EXISTS salary_payments (
    id BIGSERIAL PRIMARY KEY,
    employee_id BIGINT NOT NULL REFERENCES employees(id),
    amount BIGINT NOT NULL CHECK (amount > 0),
    paid_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_salary_payments_paid_at ON salary_payments(paid_at DESC);
`

var migration002Auth = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    first_name VARCHAR(60) NOT NULL,
    last_name VARCHAR(60) NOT NULL DEFAULT '',
    username VARCHAR(30) NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role VARCHAR(16) NOT NULL CHECK (role IN ('admin', 'head', 'employee')),
    department VARCHAR(32) NOT NULL,
    employee_id BIGINT UNIQUE REFERENCES employees(id),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS login_attempts (
    id BIGSERIAL PRIMARY KEY,
    username VARCHAR(30) NOT NULL,
    success BOOLEAN NOT NULL,
    attempted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_login_attempts_username ON login_attempts(username, attempted_at DESC);
`

var migration003Ledger = `
CREATE TABLE IF NOT EXISTS ledger_entries (
    id BIGSERIAL PRIMARY KEY,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    concept VARCHAR(200) NOT NULL,
    credit BIGINT NOT NULL DEFAULT 0 CHECK (credit >= 0),
    debit BIGINT NOT NULL DEFAULT 0 CHECK (debit >= 0),
    balance BIGINT NOT NULL CHECK (balance >= 0),
    CHECK (credit = 0 OR debit = 0)
);

CREATE INDEX IF NOT EXISTS idx_ledger_entries_created_at ON ledger_entries(created_at);
`

var migration004Fleet = `
CREATE TABLE IF NOT EXISTS buses (
    id BIGSERIAL PRIMARY KEY,
    brand VARCHAR(60) NOT NULL,
    model VARCHAR(60) NOT NULL,
    year INTEGER NOT NULL,
    capacity INTEGER NOT NULL CHECK (capacity > 0),
    state VARCHAR(16) NOT NULL DEFAULT 'new',
    acquired_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS computers (
    id BIGSERIAL PRIMARY KEY,
    brand VARCHAR(60) NOT NULL,
    model VARCHAR(60) NOT NULL,
    assigned_to VARCHAR(120) NOT NULL DEFAULT '',
    department VARCHAR(32) NOT NULL DEFAULT '',
    state VARCHAR(16) NOT NULL DEFAULT 'new'
);
`

var migration005Purchasing = `
CREATE TABLE IF NOT EXISTS suppliers (
    id BIGSERIAL PRIMARY KEY,
    name VARCHAR(100) NOT NULL,
    kind VARCHAR(60) NOT NULL,
    contact VARCHAR(100) NOT NULL DEFAULT '',
    phone VARCHAR(30) NOT NULL DEFAULT '',
    email VARCHAR(100) NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS purchases (
    id BIGSERIAL PRIMARY KEY,
    supplier_id BIGINT NOT NULL REFERENCES suppliers(id),
    product_type VARCHAR(16) NOT NULL,
    description VARCHAR(200) NOT NULL,
    quantity INTEGER NOT NULL CHECK (quantity > 0),
    unit_price BIGINT NOT NULL CHECK (unit_price > 0),
    total BIGINT NOT NULL,
    purchased_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_purchases_purchased_at ON purchases(purchased_at);

CREATE TABLE IF NOT EXISTS inventory_items (
    id BIGSERIAL PRIMARY KEY,
    name VARCHAR(200) NOT NULL UNIQUE,
    category VARCHAR(50) NOT NULL,
    quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0)
);

CREATE TABLE IF NOT EXISTS inventory_withdrawals (
    id BIGSERIAL PRIMARY KEY,
    item_id BIGINT NOT NULL REFERENCES inventory_items(id),
    quantity INTEGER NOT NULL CHECK (quantity > 0),
    requested_by VARCHAR(120) NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

var migration006Logistics = `
CREATE TABLE IF NOT EXISTS routes (
    id BIGSERIAL PRIMARY KEY,
    origin VARCHAR(100) NOT NULL,
    destination VARCHAR(100) NOT NULL,
    distance_km DOUBLE PRECISION NOT NULL CHECK (distance_km > 0),
    duration VARCHAR(30) NOT NULL,
    price BIGINT NOT NULL CHECK (price > 0)
);

CREATE TABLE IF NOT EXISTS schedules (
    id BIGSERIAL PRIMARY KEY,
    route_id BIGINT NOT NULL REFERENCES routes(id),
    bus_id BIGINT NOT NULL REFERENCES buses(id),
    departure CHAR(5) NOT NULL,
    arrival CHAR(5) NOT NULL,
    days VARCHAR(60) NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_schedules_route ON schedules(route_id);
`

var migration007Sales = `
CREATE TABLE IF NOT EXISTS tickets (
    id BIGSERIAL PRIMARY KEY,
    schedule_id BIGINT NOT NULL REFERENCES schedules(id),
    travel_date DATE NOT NULL,
    seat_number INTEGER NOT NULL CHECK (seat_number > 0),
    first_name VARCHAR(60) NOT NULL,
    last_name VARCHAR(60) NOT NULL,
    price BIGINT NOT NULL,
    sold_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- one passenger per seat per departure
CREATE UNIQUE INDEX IF NOT EXISTS idx_tickets_seat ON tickets(schedule_id, travel_date, seat_number);
CREATE INDEX IF NOT EXISTS idx_tickets_sold_at ON tickets(sold_at);
CREATE INDEX IF NOT EXISTS idx_tickets_passenger ON tickets(first_name, last_name);
`
